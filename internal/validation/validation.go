// Package validation normalizes and validates incoming payloads. Validation
// failures are returned as structured errors enumerating which constraint
// failed per field, never as panics.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"catalog/internal/apperrors"
	"catalog/internal/models"
)

// productIDPattern matches the store's 36-character identifier format.
// Malformed ids fail fast before any store lookup.
var productIDPattern = regexp.MustCompile(`^[0-9a-fA-F-]{36}$`)

// ValidID reports whether id matches the store's identifier format.
func ValidID(id string) bool {
	return productIDPattern.MatchString(id)
}

// FieldErrors maps a field name to the constraint messages it failed.
type FieldErrors map[string][]string

// Validator validates payloads against their declared shapes.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with json-tag field naming.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// UserPayload is the registration shape. Pointer fields distinguish a missing
// field from a present-but-invalid one.
type UserPayload struct {
	Name     *string `json:"name" validate:"required,min=3,max=100"`
	Email    *string `json:"email" validate:"required,email"`
	Password *string `json:"password" validate:"required,min=8"`
	Role     *string `json:"role" validate:"required,oneof=seller admin"`
}

// ProductPayload is the creation/import row shape. Numeric-like string inputs
// for price and stock are coerced before range checks.
type ProductPayload struct {
	Name        *string `json:"name" validate:"required,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       *Number `json:"price" validate:"required,gt=0"`
	Stock       *Count  `json:"stock" validate:"required,gte=0"`

	MerchantID            *string   `json:"merchantId"`
	VariantID             *string   `json:"variantId"`
	SupplierModelNumber   *string   `json:"supplierModelNumber"`
	EAN                   []string  `json:"ean"`
	Size                  *string   `json:"size"`
	Vendor                *string   `json:"vendor"`
	ProductType           []string  `json:"productType"`
	ProductGroup          []string  `json:"productGroup"`
	Department            []string  `json:"department"`
	ImageURL              *string   `json:"imageUrl" validate:"omitempty,url"`
	MSC                   *bool     `json:"msc"`
	VariantCreated        *FlexTime `json:"variantCreated"`
	VariantUpdated        *FlexTime `json:"variantUpdated"`
	InventoryLevelCreated *FlexTime `json:"inventoryLevelCreated"`
	InventoryLevelUpdated *FlexTime `json:"inventoryLevelUpdated"`
}

// ToModel builds the normalized product. Array fields default to empty,
// non-nil sequences.
func (p *ProductPayload) ToModel() models.Product {
	product := models.Product{
		Name:                deref(p.Name),
		Description:         deref(p.Description),
		Price:               float64(derefNumber(p.Price)),
		Stock:               int(derefCount(p.Stock)),
		MerchantID:          deref(p.MerchantID),
		VariantID:           deref(p.VariantID),
		SupplierModelNumber: deref(p.SupplierModelNumber),
		EAN:                 defaultList(p.EAN),
		Size:                deref(p.Size),
		Vendor:              deref(p.Vendor),
		ProductType:         defaultList(p.ProductType),
		ProductGroup:        defaultList(p.ProductGroup),
		Department:          defaultList(p.Department),
		ImageURL:            deref(p.ImageURL),
	}
	if p.MSC != nil {
		product.MSC = *p.MSC
	}
	product.VariantCreated = p.VariantCreated.TimePtr()
	product.VariantUpdated = p.VariantUpdated.TimePtr()
	product.InventoryLevelCreated = p.InventoryLevelCreated.TimePtr()
	product.InventoryLevelUpdated = p.InventoryLevelUpdated.TimePtr()
	return product
}

// ProductPatchPayload is the partial-update shape: every field is optional
// but the same per-field constraints apply when present.
type ProductPatchPayload struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Price       *Number `json:"price" validate:"omitempty,gt=0"`
	Stock       *Count  `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
	MSC         *bool   `json:"msc"`
}

// Apply merges the present fields onto product, leaving the rest untouched.
func (p *ProductPatchPayload) Apply(product *models.Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = float64(*p.Price)
	}
	if p.Stock != nil {
		product.Stock = int(*p.Stock)
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
	if p.MSC != nil {
		product.MSC = *p.MSC
	}
}

// BulkProductUpdate is one record of a bulk update batch: an id plus the
// sparse set of changed fields.
type BulkProductUpdate struct {
	ID    string  `json:"id"`
	MSC   *bool   `json:"msc"`
	Price *Number `json:"price"`
}

// ValidateUser checks the registration payload.
func (v *Validator) ValidateUser(p *UserPayload) *apperrors.Error {
	return v.check(p, "")
}

// ValidateProduct checks a single creation payload.
func (v *Validator) ValidateProduct(p *ProductPayload) *apperrors.Error {
	return v.check(p, "")
}

// ValidateProducts checks an import batch; errors are keyed per row index
// (for example "products[2].price"). Any failing row rejects the whole batch.
func (v *Validator) ValidateProducts(ps []ProductPayload) *apperrors.Error {
	all := FieldErrors{}
	for i := range ps {
		if err := v.check(&ps[i], fmt.Sprintf("products[%d].", i)); err != nil {
			for field, msgs := range err.Details.(FieldErrors) {
				all[field] = append(all[field], msgs...)
			}
		}
	}
	if len(all) > 0 {
		return apperrors.NewValidation("Invalid data", all)
	}
	return nil
}

// ValidateProductPatch checks a partial update payload.
func (v *Validator) ValidateProductPatch(p *ProductPatchPayload) *apperrors.Error {
	return v.check(p, "")
}

func (v *Validator) check(payload interface{}, prefix string) *apperrors.Error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidation("Invalid data", nil)
	}
	details := FieldErrors{}
	for _, fe := range validationErrors {
		field := prefix + fe.Field()
		details[field] = append(details[field], messageFor(fe))
	}
	return apperrors.NewValidation("Invalid data", details)
}

// messageFor maps a failed constraint to its wire message.
func messageFor(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", label, fe.Param())
	case "email":
		return "Invalid email format"
	case "oneof":
		return "Role must be 'seller' or 'admin'"
	case "gt":
		return fmt.Sprintf("%s must be greater than zero", label)
	case "gte":
		return fmt.Sprintf("%s cannot be negative", label)
	case "url":
		return "Invalid image URL"
	default:
		return fmt.Sprintf("%s failed on the '%s' constraint", label, fe.Tag())
	}
}

func fieldLabel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefNumber(n *Number) Number {
	if n == nil {
		return 0
	}
	return *n
}

func derefCount(c *Count) Count {
	if c == nil {
		return 0
	}
	return *c
}

func defaultList(l []string) models.StringList {
	if l == nil {
		return models.StringList{}
	}
	return models.StringList(l)
}
