package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/apperrors"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/services"
	"catalog/internal/validation"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Static
// paths are registered before the ":id" routes so "bulk-update" and
// "imports" are never captured as ids.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/imports", h.HandleGetUploadFiles)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Post("/import", h.HandleImportProducts)
	productRoutes.Put("/bulk-update", h.HandleBulkUpdate)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product owned by the caller. Only
// sellers may create products.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if middleware.CallerRole(c) != models.RoleSeller {
		return apperrors.NewAuthorization("Unauthorized - Only sellers can create products")
	}

	var payload validation.ProductPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return apperrors.NewBadRequest("Invalid request body")
	}

	if err := h.validate.ValidateProduct(&payload); err != nil {
		return err
	}

	product := payload.ToModel()
	if err := h.service.CreateProduct(middleware.CallerID(c), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// ImportRequest is the bulk import body: file metadata plus the parsed rows.
type ImportRequest struct {
	FileName   string                      `json:"fileName"`
	UploadDate string                      `json:"uploadDate"`
	Products   []validation.ProductPayload `json:"products"`
}

// HandleImportProducts validates and persists a parsed upload file in one
// batch, recording an import log entry.
func (h *ProductHandler) HandleImportProducts(c *fiber.Ctx) error {
	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing import request body: %v", err)
		return apperrors.NewBadRequest("Invalid request body")
	}

	if len(req.Products) == 0 {
		return apperrors.NewBadRequest("No products to import")
	}

	if err := h.validate.ValidateProducts(req.Products); err != nil {
		return err
	}

	count, err := h.service.ImportProducts(middleware.CallerID(c), req.FileName, req.UploadDate, req.Products)
	if err != nil {
		log.Printf("Error importing products: %v", err)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Products imported",
		"count":   count,
	})
}

// BulkUpdateRequest is the bulk update body: one record per selected row,
// each carrying the same sparse patch.
type BulkUpdateRequest struct {
	Products []validation.BulkProductUpdate `json:"products"`
}

// HandleBulkUpdate applies a shared patch across the selected products in a
// single batched write scoped to the caller's own rows.
func (h *ProductHandler) HandleBulkUpdate(c *fiber.Ctx) error {
	var req BulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing bulk update request body: %v", err)
		return apperrors.NewBadRequest("Invalid request body")
	}

	count, err := h.service.BulkUpdateProducts(middleware.CallerID(c), req.Products)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Products updated successfully",
		"count":   count,
	})
}

// HandleUpdateProduct applies a partial update to a single product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch validation.ProductPatchPayload
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return apperrors.NewBadRequest("Invalid request body")
	}

	if err := h.validate.ValidateProductPatch(&patch); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.Params("id"), middleware.CallerID(c), middleware.CallerRole(c), &patch)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product owned by the caller (or any product
// for admins).
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id"), middleware.CallerID(c), middleware.CallerRole(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleGetUploadFiles lists import logs, newest first.
func (h *ProductHandler) HandleGetUploadFiles(c *fiber.Ctx) error {
	files, err := h.service.GetUploadFiles()
	if err != nil {
		log.Printf("Error getting upload files: %v", err)
		return err
	}
	return c.JSON(files)
}
