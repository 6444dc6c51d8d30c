package repositories

import (
	"errors"

	"catalog/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	// CreateMany inserts a batch of products and returns the inserted count.
	CreateMany(products []models.Product) (int64, error)
	Update(product *models.Product) error
	Delete(id string) error
	// BulkUpdate applies patch to every listed product owned by ownerID in a
	// single batched write. Rows belonging to other owners are silently
	// excluded; the returned count covers only the rows actually changed.
	BulkUpdate(ids []string, patch models.BulkPatch, ownerID string) (int64, error)
}
