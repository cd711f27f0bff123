package repositories

import (
	"fmt"

	"bolucompras/internal/matching"
	"bolucompras/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
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

// List retrieves one page of products, newest first, and the total count.
func (r *GORMProductRepository) List(offset, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	if err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	var total int64
	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// FindByNormalizedName returns the first product whose normalized name equals
// the normalized candidate. Diacritic stripping cannot be expressed portably
// in SQL across sqlite and postgres, so the comparison happens here after
// loading the names; shopping lists are small enough for that to be fine.
func (r *GORMProductRepository) FindByNormalizedName(name string) (*models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to scan products for name match: %w", err)
	}
	for i := range products {
		if matching.Equal(products[i].Name, name) {
			return &products[i], nil
		}
	}
	return nil, nil
}

// Create creates a new product in the database, assigning an ID if missing.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists the full document. GORM's Save does not report a missing
// row as an error, so RowsAffected is checked explicitly.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
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
