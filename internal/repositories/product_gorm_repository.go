package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CreateMany inserts a batch of products, assigning ids where missing.
func (r *GORMProductRepository) CreateMany(products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
	}
	res := r.db.Create(&products)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to create products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound when no rows match,
		// so we check RowsAffected.
		return ErrNotFound
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpdate sets the patched fields on every listed product owned by
// ownerID. The write is a single batched UPDATE scoped by
// `id IN (ids) AND user_id = ownerID`.
func (r *GORMProductRepository) BulkUpdate(ids []string, patch models.BulkPatch, ownerID string) (int64, error) {
	updates := map[string]interface{}{}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.MSC != nil {
		updates["msc"] = *patch.MSC
	}
	if len(updates) == 0 || len(ids) == 0 {
		return 0, nil
	}

	res := r.db.Model(&models.Product{}).
		Where("id IN ? AND user_id = ?", ids, ownerID).
		Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to bulk update products: %w", res.Error)
	}
	return res.RowsAffected, nil
}
