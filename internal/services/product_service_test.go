package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) CreateMany(products []models.Product) (int64, error) {
	args := m.Called(products)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) BulkUpdate(ids []string, patch models.BulkPatch, ownerID string) (int64, error) {
	args := m.Called(ids, patch, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUploadFileRepository is a mock implementation of repositories.UploadFileRepository
type MockUploadFileRepository struct {
	mock.Mock
}

func (m *MockUploadFileRepository) GetAll() ([]models.UploadFile, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UploadFile), args.Error(1)
}

func (m *MockUploadFileRepository) Create(file *models.UploadFile) error {
	args := m.Called(file)
	return args.Error(0)
}

const (
	ownerID = "11111111-1111-1111-1111-111111111111"
	otherID = "22222222-2222-2222-2222-222222222222"
	prodID  = "33333333-3333-3333-3333-333333333333"
	prodID2 = "44444444-4444-4444-4444-444444444444"
)

func newProductService(repo repositories.ProductRepository, uploadRepo repositories.UploadFileRepository) *services.ProductService {
	return services.NewProductService(repo, uploadRepo, nil, nil)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, new(MockUploadFileRepository))

	// A malformed id fails fast without touching the store.
	_, err := service.GetProductByID("not-a-uuid")
	assert.Error(t, err)
	appErr := err.(*apperrors.Error)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid product ID", appErr.Message)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)

	// A well-formed but absent id is a 404.
	mockRepo.On("GetByID", prodID).Return(nil, repositories.ErrNotFound).Once()
	_, err = service.GetProductByID(prodID)
	appErr = err.(*apperrors.Error)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Product not found", appErr.Message)
	mockRepo.AssertExpectations(t)

	// A present id comes back as stored.
	mockRepo.On("GetByID", prodID).Return(&models.Product{ID: prodID, Name: "Laptop"}, nil).Once()
	product, err := service.GetProductByID(prodID)
	assert.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, new(MockUploadFileRepository))

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product := models.Product{Name: "Laptop", Price: 999.99, Stock: 3}
	err := service.CreateProduct(ownerID, &product)
	assert.NoError(t, err)
	assert.Equal(t, ownerID, product.UserID)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_Ownership(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, new(MockUploadFileRepository))

	stored := &models.Product{ID: prodID, UserID: ownerID, Name: "Laptop", Price: 999.99}

	// Not-found wins over ownership, so even a non-owner sees a 404 for a
	// missing product.
	mockRepo.On("GetByID", prodID).Return(nil, repositories.ErrNotFound).Once()
	_, err := service.UpdateProduct(prodID, otherID, models.RoleSeller, &validation.ProductPatchPayload{})
	appErr := err.(*apperrors.Error)
	assert.Equal(t, 404, appErr.Status)
	mockRepo.AssertExpectations(t)

	// A non-owner seller cannot update the row.
	mockRepo.On("GetByID", prodID).Return(stored, nil).Once()
	_, err = service.UpdateProduct(prodID, otherID, models.RoleSeller, &validation.ProductPatchPayload{})
	appErr = err.(*apperrors.Error)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "Unauthorized - You can only update your own products", appErr.Message)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)

	// The owner's sparse patch only touches the provided fields.
	newName := "Laptop Pro"
	mockRepo.On("GetByID", prodID).Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	updated, err := service.UpdateProduct(prodID, ownerID, models.RoleSeller, &validation.ProductPatchPayload{Name: &newName})
	assert.NoError(t, err)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, 999.99, updated.Price)
	mockRepo.AssertExpectations(t)

	// Admins bypass the ownership check.
	mockRepo.On("GetByID", prodID).Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	_, err = service.UpdateProduct(prodID, otherID, models.RoleAdmin, &validation.ProductPatchPayload{})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, new(MockUploadFileRepository))

	stored := &models.Product{ID: prodID, UserID: ownerID}

	// Non-owner seller is refused.
	mockRepo.On("GetByID", prodID).Return(stored, nil).Once()
	err := service.DeleteProduct(prodID, otherID, models.RoleSeller)
	appErr := err.(*apperrors.Error)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "Unauthorized - You can only delete your own products", appErr.Message)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)

	// Owner deletes.
	mockRepo.On("GetByID", prodID).Return(stored, nil).Once()
	mockRepo.On("Delete", prodID).Return(nil).Once()
	err = service.DeleteProduct(prodID, ownerID, models.RoleSeller)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ImportProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUploads := new(MockUploadFileRepository)
	service := newProductService(mockRepo, mockUploads)

	name1, name2 := "Widget", "Gadget"
	price := validation.Number(10)
	stock := validation.Count(5)
	payloads := []validation.ProductPayload{
		{Name: &name1, Price: &price, Stock: &stock},
		{Name: &name2, Price: &price, Stock: &stock},
	}

	mockRepo.On("CreateMany", mock.MatchedBy(func(products []models.Product) bool {
		if len(products) != 2 {
			return false
		}
		// Every imported row is stamped with the caller as owner.
		for _, p := range products {
			if p.UserID != ownerID {
				return false
			}
		}
		return true
	})).Return(int64(2), nil).Once()
	mockUploads.On("Create", mock.MatchedBy(func(file *models.UploadFile) bool {
		return file.FileName == "products.xlsx" && file.UserID == ownerID && file.ItemCount == 2
	})).Return(nil).Once()

	count, err := service.ImportProducts(ownerID, "products.xlsx", "2026-08-31", payloads)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	mockRepo.AssertExpectations(t)
	mockUploads.AssertExpectations(t)
}

func TestProductService_BulkUpdateProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo, new(MockUploadFileRepository))

	price := validation.Number(5)
	msc := true

	// Empty selection is rejected before anything else.
	_, err := service.BulkUpdateProducts(ownerID, nil)
	appErr := err.(*apperrors.Error)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "No products to update", appErr.Message)

	// A batch with no patch fields has nothing to apply.
	_, err = service.BulkUpdateProducts(ownerID, []validation.BulkProductUpdate{{ID: prodID}})
	appErr = err.(*apperrors.Error)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "No fields to update", appErr.Message)

	// Records carrying different values are rejected as a whole.
	otherPrice := validation.Number(7)
	_, err = service.BulkUpdateProducts(ownerID, []validation.BulkProductUpdate{
		{ID: prodID, Price: &price},
		{ID: prodID2, Price: &otherPrice},
	})
	appErr = err.(*apperrors.Error)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "All products in a bulk update must share the same field values", appErr.Message)

	// One malformed id rejects the whole batch, keyed by its position.
	_, err = service.BulkUpdateProducts(ownerID, []validation.BulkProductUpdate{
		{ID: prodID, Price: &price},
		{ID: "bogus", Price: &price},
	})
	appErr = err.(*apperrors.Error)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid product ID", appErr.Message)
	assert.Contains(t, appErr.Details, "products[1].id")
	mockRepo.AssertNotCalled(t, "BulkUpdate", mock.Anything, mock.Anything, mock.Anything)

	// A non-positive price never reaches the store.
	badPrice := validation.Number(0)
	_, err = service.BulkUpdateProducts(ownerID, []validation.BulkProductUpdate{
		{ID: prodID, Price: &badPrice},
	})
	appErr = err.(*apperrors.Error)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Details.(validation.FieldErrors)["price"], "Price must be greater than zero")

	// A valid batch is one store call; the count comes from the store, which
	// only touches the caller's own rows.
	mockRepo.On("BulkUpdate", []string{prodID, prodID2}, mock.MatchedBy(func(patch models.BulkPatch) bool {
		return patch.Price != nil && *patch.Price == 5 && patch.MSC != nil && *patch.MSC == true
	}), ownerID).Return(int64(1), nil).Once()

	count, err := service.BulkUpdateProducts(ownerID, []validation.BulkProductUpdate{
		{ID: prodID, Price: &price, MSC: &msc},
		{ID: prodID2, Price: &price, MSC: &msc},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	mockRepo.AssertExpectations(t)
}

func TestProductService_BulkUpdate_OwnershipScope(t *testing.T) {
	// The in-memory store exercises the ownership scoping end to end: rows
	// owned by someone else are silently excluded from the write.
	repo := repositories.NewMockProductRepository()
	_ = repo.Create(&models.Product{ID: prodID, UserID: ownerID, Name: "Mine", Price: 1})
	_ = repo.Create(&models.Product{ID: prodID2, UserID: otherID, Name: "Theirs", Price: 1})

	service := newProductService(repo, new(MockUploadFileRepository))

	price := validation.Number(5)
	count, err := service.BulkUpdateProducts(ownerID, []validation.BulkProductUpdate{
		{ID: prodID, Price: &price},
		{ID: prodID2, Price: &price},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	mine, err := repo.GetByID(prodID)
	assert.NoError(t, err)
	assert.Equal(t, 5.0, mine.Price)

	theirs, err := repo.GetByID(prodID2)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, theirs.Price)

	// Replaying the same batch is harmless: same patch, same count.
	count, err = service.BulkUpdateProducts(ownerID, []validation.BulkProductUpdate{
		{ID: prodID, Price: &price},
		{ID: prodID2, Price: &price},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
