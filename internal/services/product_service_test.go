package services_test

import (
	"testing"

	"bolucompras/internal/models"
	"bolucompras/internal/repositories"
	"bolucompras/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(offset, limit int) ([]models.Product, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByNormalizedName(name string) (*models.Product, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.ProductEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event string, product interface{}) error {
	args := m.Called(event, product)
	return args.Error(0)
}

const testID = "7f9c24e5-2f3a-4b2c-9c1d-3a61a2d1c111"

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.Product{
		{ID: "1", Name: "Leche", Quantity: 1},
		{ID: "2", Name: "Pan", Quantity: 2},
	}

	// Page 2 with limit 10 translates to offset 10.
	mockRepo.On("List", 10, 10).Return(expected, int64(25), nil).Once()

	page, err := service.ListProducts(2, 10)

	assert.NoError(t, err)
	assert.Equal(t, expected, page.Data)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages) // ceil(25/10)
	assert.Equal(t, int64(25), page.Total)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProductsDefaults(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Out-of-range page and limit fall back to 1 and 10.
	mockRepo.On("List", 0, 10).Return([]models.Product{}, int64(0), nil).Once()

	page, err := service.ListProducts(0, -5)

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Data)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProductsPastTheEnd(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("List", 90, 10).Return([]models.Product{}, int64(12), nil).Once()

	page, err := service.ListProducts(10, 10)

	assert.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 2, page.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductAppliesDefaults(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByNormalizedName", "Leche").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(services.CreateProductInput{Name: "  Leche  "}, false)

	assert.NoError(t, err)
	assert.Equal(t, "Leche", product.Name) // trimmed
	assert.Equal(t, 1, product.Quantity)
	assert.Equal(t, "General", product.Categoria)
	assert.Equal(t, 1, product.Prioridad)
	assert.Equal(t, 1, product.CantidadPredeterminada)
	assert.False(t, product.Purchased)
	assert.Nil(t, product.Precio)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductEmptyName(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	_, err := service.CreateProduct(services.CreateProductInput{Name: "   "}, false)

	assert.ErrorIs(t, err, services.ErrNameRequired)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProductConflict(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	existing := &models.Product{ID: testID, Name: "Leche", Quantity: 2}
	mockRepo.On("FindByNormalizedName", "leche").Return(existing, nil).Once()

	_, err := service.CreateProduct(services.CreateProductInput{Name: "leche"}, false)

	assert.Error(t, err)
	conflict, ok := services.AsConflict(err)
	assert.True(t, ok)
	assert.Equal(t, existing, conflict.Existing)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductForceSkipsGate(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(services.CreateProductInput{Name: "Leche"}, true)

	assert.NoError(t, err)
	assert.Equal(t, "Leche", product.Name)
	mockRepo.AssertNotCalled(t, "FindByNormalizedName", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductPriorityOutOfRange(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByNormalizedName", "Leche").Return(nil, nil).Twice()

	_, err := service.CreateProduct(services.CreateProductInput{Name: "Leche", Prioridad: intPtr(6)}, false)
	assert.ErrorIs(t, err, services.ErrPriorityOutOfRange)

	_, err = service.CreateProduct(services.CreateProductInput{Name: "Leche", Prioridad: intPtr(0)}, false)
	assert.ErrorIs(t, err, services.ErrPriorityOutOfRange)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	mockRepo.On("FindByNormalizedName", "Pan").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	mockPub.On("PublishProductEvent", services.EventProductCreated, mock.Anything).Return(nil).Once()

	_, err := service.CreateProduct(services.CreateProductInput{Name: "Pan"}, false)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_UpdateProductWhitelist(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ID: testID, Name: "Leche", Quantity: 2, Categoria: "General", Prioridad: 1}
	mockRepo.On("GetByID", testID).Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	updated, err := service.UpdateProduct(testID, models.ProductPatch{
		Quantity:  intPtr(5),
		Purchased: boolPtr(true),
		Categoria: strPtr("Lácteos"),
		Prioridad: intPtr(3),
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.True(t, updated.Purchased)
	assert.Equal(t, "Lácteos", updated.Categoria)
	assert.Equal(t, 3, updated.Prioridad)
	assert.Equal(t, "Leche", updated.Name) // name is not patchable
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductInvalidID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	_, err := service.UpdateProduct("definitely-not-a-uuid", models.ProductPatch{Quantity: intPtr(1)})

	assert.ErrorIs(t, err, services.ErrInvalidID)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestProductService_UpdateProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", testID).Return(nil, repositories.ErrNotFound).Once()

	_, err := service.UpdateProduct(testID, models.ProductPatch{Quantity: intPtr(1)})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := &models.Product{ID: testID, Name: "Leche", Quantity: 2, Prioridad: 1}
	mockRepo.On("GetByID", testID).Return(stored, nil).Twice()

	_, err := service.UpdateProduct(testID, models.ProductPatch{Quantity: intPtr(-1)})
	assert.ErrorIs(t, err, services.ErrQuantityNegative)

	_, err = service.UpdateProduct(testID, models.ProductPatch{Prioridad: intPtr(9)})
	assert.ErrorIs(t, err, services.ErrPriorityOutOfRange)

	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

// Applying the same patch twice must yield the same final document state.
func TestProductService_UpdateProductIdempotent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	stored := models.Product{ID: testID, Name: "Leche", Quantity: 2}
	patch := models.ProductPatch{Quantity: intPtr(7), Purchased: boolPtr(true)}

	mockRepo.On("GetByID", testID).Return(&stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Twice()

	first, err := service.UpdateProduct(testID, patch)
	assert.NoError(t, err)

	// The second call sees the already-updated document.
	mockRepo.On("GetByID", testID).Return(first, nil).Once()
	second, err := service.UpdateProduct(testID, patch)
	assert.NoError(t, err)

	assert.Equal(t, first.Quantity, second.Quantity)
	assert.Equal(t, first.Purchased, second.Purchased)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	stored := &models.Product{ID: testID, Name: "Leche"}
	mockRepo.On("GetByID", testID).Return(stored, nil).Once()
	mockRepo.On("Delete", testID).Return(nil).Once()
	mockPub.On("PublishProductEvent", services.EventProductDeleted, mock.Anything).Return(nil).Once()

	err := service.DeleteProduct(testID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_DeleteProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", "missing").Return(nil, repositories.ErrNotFound).Once()

	err := service.DeleteProduct("missing")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
	mockRepo.AssertExpectations(t)
}
