package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// CreateMany adds a batch of products.
func (r *MockProductRepository) CreateMany(products []models.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		r.products[products[i].ID] = products[i]
	}
	return int64(len(products)), nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return ErrNotFound
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// BulkUpdate patches every listed product owned by ownerID, mirroring the
// batched `id IN (ids) AND user_id = ownerID` write of the GORM repository.
func (r *MockProductRepository) BulkUpdate(ids []string, patch models.BulkPatch, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if patch.Empty() {
		return 0, nil
	}

	var count int64
	for _, id := range ids {
		product, ok := r.products[id]
		if !ok || product.UserID != ownerID {
			continue
		}
		if patch.Price != nil {
			product.Price = *patch.Price
		}
		if patch.MSC != nil {
			product.MSC = *patch.MSC
		}
		product.UpdatedAt = time.Now()
		r.products[id] = product
		count++
	}
	return count, nil
}
