// Package controller holds the client-side application state: the page
// controller owning the loaded product page, the list view rendering, and the
// duplicate-resolution workflow over the add-product form.
//
// All mutations are pessimistic: visible state changes only after the server
// confirmed the mutation, via a refetch of the current page. There is no
// optimistic patching and therefore no rollback path.
package controller

import (
	"errors"
	"strings"

	"bolucompras/internal/client"
	"bolucompras/internal/models"
)

var (
	// ErrEmptyName rejects a submit with a blank product name.
	ErrEmptyName = errors.New("please enter a product name")
	// ErrNotLoaded is returned when an action targets an id that is not on
	// the currently loaded page.
	ErrNotLoaded = errors.New("product is not on the loaded page")
)

// AddOutcome is the result of submitting the add-product form.
type AddOutcome int

const (
	// AddCreated means a new product was created and the list refreshed.
	AddCreated AddOutcome = iota
	// AddDuplicateFound means an existing record was staged for review; no
	// product was created. Resolve with ConfirmIncrement, ConfirmEdit,
	// ConfirmForceAdd, or CancelDuplicate.
	AddDuplicateFound
)

// ListState is the page controller's visible state.
type ListState struct {
	Products   []models.Product
	Page       int
	TotalPages int
	Total      int64
	Loading    bool
}

// pendingAdd remembers the form fields across a duplicate review so that
// force-add creates the product the user actually described.
type pendingAdd struct {
	name      string
	categoria string
	prioridad int
}

// PageController owns pagination state and wires the list view and the
// duplicate-resolution workflow to the product API.
type PageController struct {
	api      *client.ProductAPI
	resolver Resolver
	state    ListState
	pageSize int
	pending  pendingAdd
}

// NewPageController creates a controller fetching pageSize items per page;
// pageSize defaults to 10.
func NewPageController(api *client.ProductAPI, pageSize int) *PageController {
	if pageSize < 1 {
		pageSize = 10
	}
	return &PageController{
		api:      api,
		pageSize: pageSize,
		state:    ListState{Page: 1},
	}
}

// State returns a copy of the current list state.
func (pc *PageController) State() ListState {
	return pc.state
}

// Resolver exposes the duplicate workflow, e.g. to inspect its state.
func (pc *PageController) Resolver() *Resolver {
	return &pc.resolver
}

// Start fetches the first page.
func (pc *PageController) Start() error {
	pc.state.Page = 1
	return pc.refresh()
}

// refresh refetches the current page from the server. If the cursor ended up
// past the last page (e.g. the last item of the last page was deleted) it
// steps back to the real last page.
func (pc *PageController) refresh() error {
	pc.state.Loading = true
	defer func() { pc.state.Loading = false }()

	page, err := pc.api.List(pc.state.Page, pc.pageSize)
	if err != nil {
		return err
	}
	if len(page.Data) == 0 && page.TotalPages > 0 && pc.state.Page > page.TotalPages {
		pc.state.Page = page.TotalPages
		page, err = pc.api.List(pc.state.Page, pc.pageSize)
		if err != nil {
			return err
		}
	}

	pc.state.Products = page.Data
	pc.state.TotalPages = page.TotalPages
	pc.state.Total = page.Total
	return nil
}

// Suggestions returns the fuzzy matches for the name being typed, drawn from
// the currently loaded page.
func (pc *PageController) Suggestions(input string) []models.Product {
	return pc.resolver.Type(input, pc.state.Products)
}

// SubmitName handles the add-product form submit. A name that matches an
// existing product (normalized equality, checked locally first and then by
// the server's duplicate gate) stages that record and reports
// AddDuplicateFound; otherwise the product is created and the list refreshed.
func (pc *PageController) SubmitName(name, categoria string, prioridad int) (AddOutcome, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, ErrEmptyName
	}
	pc.pending = pendingAdd{name: trimmed, categoria: categoria, prioridad: prioridad}

	if _, found := pc.resolver.Submit(trimmed, pc.state.Products); found {
		return AddDuplicateFound, nil
	}

	_, err := pc.api.Create(pc.pendingCreateRequest(), false)
	if err != nil {
		var conflict *client.ConflictError
		if errors.As(err, &conflict) {
			// The duplicate lives beyond the loaded page; the server
			// returned it, so stage it for review.
			pc.resolver.Stage(conflict.Existing)
			return AddDuplicateFound, nil
		}
		return 0, err
	}

	if err := pc.refresh(); err != nil {
		return 0, err
	}
	return AddCreated, nil
}

// ConfirmIncrement resolves a staged duplicate by adding 1 to its quantity.
func (pc *PageController) ConfirmIncrement() error {
	staged, err := pc.resolver.BeginIncrement()
	if err != nil {
		return err
	}
	quantity := staged.Quantity + 1
	if _, err := pc.api.Update(staged.ID, models.ProductPatch{Quantity: &quantity}); err != nil {
		pc.resolver.Finish()
		return err
	}
	pc.resolver.Finish()
	return pc.refresh()
}

// ConfirmEdit resolves a staged duplicate by updating its category and
// priority, leaving quantity unchanged.
func (pc *PageController) ConfirmEdit(categoria string, prioridad int) error {
	staged, err := pc.resolver.BeginEdit()
	if err != nil {
		return err
	}
	if _, err := pc.api.Update(staged.ID, models.ProductPatch{Categoria: &categoria, Prioridad: &prioridad}); err != nil {
		pc.resolver.Finish()
		return err
	}
	pc.resolver.Finish()
	return pc.refresh()
}

// ConfirmForceAdd resolves a staged duplicate by creating a new record with
// the same name anyway, bypassing the server's duplicate gate once.
func (pc *PageController) ConfirmForceAdd() error {
	if _, err := pc.resolver.BeginForceAdd(); err != nil {
		return err
	}
	if _, err := pc.api.Create(pc.pendingCreateRequest(), true); err != nil {
		pc.resolver.Finish()
		return err
	}
	pc.resolver.Finish()
	return pc.refresh()
}

// CancelDuplicate abandons the staged duplicate without any API call.
func (pc *PageController) CancelDuplicate() {
	pc.resolver.Cancel()
	pc.resolver.Finish()
}

func (pc *PageController) pendingCreateRequest() client.CreateRequest {
	request := client.CreateRequest{Name: pc.pending.name}
	if pc.pending.categoria != "" {
		categoria := pc.pending.categoria
		request.Categoria = &categoria
	}
	if pc.pending.prioridad != 0 {
		prioridad := pc.pending.prioridad
		request.Prioridad = &prioridad
	}
	return request
}

// IncrementQuantity adds 1 to a listed product's quantity.
func (pc *PageController) IncrementQuantity(id string) error {
	product, err := pc.loaded(id)
	if err != nil {
		return err
	}
	quantity := product.Quantity + 1
	if _, err := pc.api.Update(id, models.ProductPatch{Quantity: &quantity}); err != nil {
		return err
	}
	return pc.refresh()
}

// DecrementQuantity subtracts 1 from a listed product's quantity, clamped at
// 0: decrementing a zero quantity is a no-op with no API call.
func (pc *PageController) DecrementQuantity(id string) error {
	product, err := pc.loaded(id)
	if err != nil {
		return err
	}
	if product.Quantity == 0 {
		return nil
	}
	quantity := product.Quantity - 1
	if _, err := pc.api.Update(id, models.ProductPatch{Quantity: &quantity}); err != nil {
		return err
	}
	return pc.refresh()
}

// TogglePurchased flips a listed product's purchased flag.
func (pc *PageController) TogglePurchased(id string) error {
	product, err := pc.loaded(id)
	if err != nil {
		return err
	}
	purchased := !product.Purchased
	if _, err := pc.api.Update(id, models.ProductPatch{Purchased: &purchased}); err != nil {
		return err
	}
	return pc.refresh()
}

// DeleteProduct removes a listed product.
func (pc *PageController) DeleteProduct(id string) error {
	if _, err := pc.loaded(id); err != nil {
		return err
	}
	if err := pc.api.Delete(id); err != nil {
		return err
	}
	return pc.refresh()
}

// NextPage moves forward one page; a no-op on the last page.
func (pc *PageController) NextPage() error {
	if !pc.CanNextPage() {
		return nil
	}
	pc.state.Page++
	return pc.refresh()
}

// PreviousPage moves back one page; a no-op on page 1.
func (pc *PageController) PreviousPage() error {
	if !pc.CanPreviousPage() {
		return nil
	}
	pc.state.Page--
	return pc.refresh()
}

// CanPreviousPage reports whether there is a page before the current one.
func (pc *PageController) CanPreviousPage() bool {
	return pc.state.Page > 1
}

// CanNextPage reports whether there is a page after the current one.
func (pc *PageController) CanNextPage() bool {
	return pc.state.Page < pc.state.TotalPages
}

func (pc *PageController) loaded(id string) (*models.Product, error) {
	for i := range pc.state.Products {
		if pc.state.Products[i].ID == id {
			return &pc.state.Products[i], nil
		}
	}
	return nil, ErrNotLoaded
}
