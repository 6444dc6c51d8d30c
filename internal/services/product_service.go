package services

import (
	"context"
	"errors"
	"log"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"
	"catalog/pkg/cache"
	"catalog/pkg/rabbitmq"
)

// ProductService handles business logic related to products: CRUD with
// per-record ownership enforcement, bulk import and bulk update.
type ProductService struct {
	repo       repositories.ProductRepository
	uploadRepo repositories.UploadFileRepository
	listCache  *cache.Cache     // nil when redis is not configured
	events     *rabbitmq.Client // nil when RabbitMQ is not configured
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, uploadRepo repositories.UploadFileRepository, listCache *cache.Cache, events *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:       repo,
		uploadRepo: uploadRepo,
		listCache:  listCache,
		events:     events,
	}
}

// GetAllProducts retrieves all products, serving from the cache when warm.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	ctx := context.Background()
	if products, ok := s.listCache.GetProducts(ctx); ok {
		return products, nil
	}

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	if err := s.listCache.SetProducts(ctx, products); err != nil {
		log.Printf("Warning: failed to cache product list: %v", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product. A malformed id fails fast with a
// validation error before any store lookup.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	if !validation.ValidID(id) {
		return nil, apperrors.NewBadRequest("Invalid product ID")
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct stamps the new record with the caller as owner and persists
// it.
func (s *ProductService) CreateProduct(ownerID string, product *models.Product) error {
	product.UserID = ownerID
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// UpdateProduct applies a partial update. Not-found is reported before the
// ownership check, so a missing product is a 404 even for non-owners.
func (s *ProductService) UpdateProduct(id, callerID string, role models.Role, patch *validation.ProductPatchPayload) (*models.Product, error) {
	if !validation.ValidID(id) {
		return nil, apperrors.NewBadRequest("Invalid product ID")
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound("Product not found")
		}
		return nil, err
	}

	if product.UserID != callerID && role != models.RoleAdmin {
		return nil, apperrors.NewAuthorization("Unauthorized - You can only update your own products")
	}

	patch.Apply(product)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return product, nil
}

// DeleteProduct removes a product after the same not-found-then-ownership
// checks as UpdateProduct.
func (s *ProductService) DeleteProduct(id, callerID string, role models.Role) error {
	if !validation.ValidID(id) {
		return apperrors.NewBadRequest("Invalid product ID")
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFound("Product not found")
		}
		return err
	}

	if product.UserID != callerID && role != models.RoleAdmin {
		return apperrors.NewAuthorization("Unauthorized - You can only delete your own products")
	}

	if err := s.repo.Delete(product.ID); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// GetUploadFiles lists import logs, newest first.
func (s *ProductService) GetUploadFiles() ([]models.UploadFile, error) {
	return s.uploadRepo.GetAll()
}

func (s *ProductService) invalidateCache() {
	if err := s.listCache.InvalidateProducts(context.Background()); err != nil {
		log.Printf("Warning: failed to invalidate product cache: %v", err)
	}
}

func (s *ProductService) publishEvent(event rabbitmq.Event) {
	if s.events == nil {
		log.Println("RabbitMQ client is not initialized. Skipping event publication.")
		return
	}
	if err := s.events.PublishEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event.Type, err)
	}
}
