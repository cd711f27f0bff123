package services

import (
	"fmt"
	"log"
	"strings"

	"bolucompras/internal/models"
	"bolucompras/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ProductEventPublisher publishes product lifecycle events to the message
// queue. A nil publisher disables publishing. Satisfied by rabbitmq.Client.
type ProductEventPublisher interface {
	PublishProductEvent(event string, product interface{}) error
}

// Event names published after successful mutations.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// CreateProductInput is the payload for creating a product. Optional fields
// are pointers so "absent" and "zero" can be told apart before defaults apply.
type CreateProductInput struct {
	Name                   string   `json:"name"`
	Quantity               *int     `json:"quantity"`
	Purchased              *bool    `json:"purchased"`
	Categoria              *string  `json:"categoria"`
	Prioridad              *int     `json:"prioridad"`
	Precio                 *float64 `json:"precio"`
	CantidadPredeterminada *int     `json:"cantidad_predeterminada"`
}

// ProductService handles business logic related to products: pagination math,
// create defaults, the duplicate gate, and the PATCH field whitelist.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher ProductEventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher ProductEventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// ListProducts returns one page of products, newest first. page and limit
// default to 1 and 10 when out of range. There is deliberately no upper bound
// on limit, matching the original API.
func (s *ProductService) ListProducts(page, limit int) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	products, total, err := s.repo.List((page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.ProductPage{
		Data:       products,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates the input, applies the original API's defaults, and
// runs the duplicate gate: if a product with the same normalized name already
// exists the result is a ConflictError carrying that record. force skips the
// gate for a single attempt (the workflow's "add as new anyway" branch).
//
// The gate is a read-then-write check with no transactional guarantee, so two
// concurrent creates of the same name can still both land.
func (s *ProductService) CreateProduct(input CreateProductInput, force bool) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if !force {
		existing, err := s.repo.FindByNormalizedName(name)
		if err != nil {
			return nil, fmt.Errorf("duplicate check failed: %w", err)
		}
		if existing != nil {
			return nil, &ConflictError{Existing: existing}
		}
	}

	product := &models.Product{
		Name:                   name,
		Quantity:               1,
		CantidadPredeterminada: 1,
		Categoria:              "General",
		Prioridad:              1,
		Precio:                 input.Precio,
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.Purchased != nil {
		product.Purchased = *input.Purchased
	}
	if input.Categoria != nil && strings.TrimSpace(*input.Categoria) != "" {
		product.Categoria = *input.Categoria
	}
	if input.Prioridad != nil {
		product.Prioridad = *input.Prioridad
	}
	if input.CantidadPredeterminada != nil {
		product.CantidadPredeterminada = *input.CantidadPredeterminada
	}

	if product.Quantity < 0 {
		return nil, ErrQuantityNegative
	}
	if product.Prioridad < 1 || product.Prioridad > 5 {
		return nil, ErrPriorityOutOfRange
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, fmt.Errorf("product validation failed: %w", err)
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	s.publish(EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies a whitelisted partial update to an existing product
// and returns the updated document. Fields outside the patch struct never
// reach the store. Applying the same patch twice yields the same state.
func (s *ProductService) UpdateProduct(id string, patch models.ProductPatch) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, ErrQuantityNegative
	}
	if patch.Prioridad != nil && (*patch.Prioridad < 1 || *patch.Prioridad > 5) {
		return nil, ErrPriorityOutOfRange
	}

	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	if patch.Purchased != nil {
		product.Purchased = *patch.Purchased
	}
	if patch.Categoria != nil {
		product.Categoria = *patch.Categoria
	}
	if patch.Prioridad != nil {
		product.Prioridad = *patch.Prioridad
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.publish(EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, product)
	return nil
}

// publish sends a product event, logging failures instead of propagating
// them: the mutation already committed and event delivery is best-effort.
func (s *ProductService) publish(event string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(event, product); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", event, product.ID, err)
	}
}
