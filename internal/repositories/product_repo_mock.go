package repositories

import (
	"sort"
	"sync"
	"time"

	"bolucompras/internal/matching"
	"bolucompras/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository,
// used for tests and for running the server without a database.
type MockProductRepository struct {
	products map[string]models.Product
	seq      map[string]int // insertion order, tie-breaker for equal timestamps
	nextSeq  int
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		seq:      make(map[string]int),
	}
}

// List returns one page of products, newest first, plus the total count.
func (r *MockProductRepository) List(offset, limit int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return r.seq[all[i].ID] > r.seq[all[j].ID]
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	page := make([]models.Product, end-offset)
	copy(page, all[offset:end])
	return page, total, nil
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

// FindByNormalizedName returns the first product matching the normalized
// candidate name, oldest first, or nil if there is none.
func (r *MockProductRepository) FindByNormalizedName(name string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Product
	foundSeq := -1
	for id, p := range r.products {
		if matching.Equal(p.Name, name) {
			if found == nil || r.seq[id] < foundSeq {
				cp := p
				found = &cp
				foundSeq = r.seq[id]
			}
		}
	}
	return found, nil
}

// Create adds a new product, assigning an ID and timestamps if missing.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	r.products[product.ID] = *product
	r.seq[product.ID] = r.nextSeq
	r.nextSeq++
	return nil
}

// Update replaces an existing product document.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
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

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	delete(r.seq, id)
	return nil
}
