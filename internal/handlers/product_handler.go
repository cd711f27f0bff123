package handlers

import (
	"errors"
	"log"

	"bolucompras/internal/models"
	"bolucompras/internal/repositories"
	"bolucompras/internal/services"

	"github.com/gofiber/fiber/v2"
)

// User-facing messages, kept in Spanish to match the original wire format.
const (
	msgNameRequired    = "El campo 'name' es obligatorio y no puede estar vacío."
	msgProductExists   = "Producto ya existe"
	msgProductNotFound = "Producto no encontrado"
	msgProductDeleted  = "Producto eliminado"
)

// ProductHandler handles HTTP requests for the shopping list.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns one page of products plus pagination metadata.
// Requesting a page beyond the last one returns an empty data array, not an
// error.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	productPage, err := h.service.ListProducts(page, limit)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.JSON(productPage)
}

// HandleCreateProduct creates a new product. A duplicate name yields a 400
// carrying the existing record so the client can resolve it; ?force=true
// skips the duplicate gate for this single attempt.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	force := c.QueryBool("force", false)

	product, err := h.service.CreateProduct(input, force)
	if err != nil {
		if conflict, ok := services.AsConflict(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": msgProductExists,
				"exists":  true,
				"product": conflict.Existing,
			})
		}
		if errors.Is(err, services.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": msgNameRequired,
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a whitelisted partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing patch request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(id, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": msgProductNotFound,
			})
		}
		log.Printf("Error updating product %s: %v", id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(product)
}

// HandleDeleteProduct removes a product. Repeating the delete yields a 404.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": msgProductNotFound,
			})
		}
		log.Printf("Error deleting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": msgProductDeleted,
	})
}
