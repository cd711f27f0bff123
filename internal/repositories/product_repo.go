package repositories

import (
	"errors"

	"bolucompras/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a stored product.
var ErrNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// The store does not enforce name uniqueness; duplicate handling lives in the
// service layer as a read-then-write check.
type ProductRepository interface {
	// List returns one page of products sorted by creation time descending,
	// plus the total document count. offset/limit are raw row counts.
	List(offset, limit int) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	// FindByNormalizedName returns the first product whose normalized name
	// equals the normalized candidate, or nil if there is none.
	FindByNormalizedName(name string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
