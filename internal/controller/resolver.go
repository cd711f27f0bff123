package controller

import (
	"errors"
	"strings"

	"bolucompras/internal/matching"
	"bolucompras/internal/models"
)

// ErrNotReviewing is returned when a resolution choice is made while no
// duplicate is staged.
var ErrNotReviewing = errors.New("no staged duplicate to resolve")

// ResolutionState is the state of the add-product form's duplicate workflow.
type ResolutionState int

const (
	StateIdle ResolutionState = iota
	StateTyping
	StateReviewing
	StateIncrementing
	StateEditing
	StateForceAdding
	StateCancelled
)

func (s ResolutionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateTyping:
		return "Typing"
	case StateReviewing:
		return "Reviewing"
	case StateIncrementing:
		return "Incrementing"
	case StateEditing:
		return "Editing"
	case StateForceAdding:
		return "ForceAdding"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Resolver is the duplicate-resolution state machine. It only decides; the
// page controller performs the API calls its transitions imply.
//
//	Idle -> Typing -> Reviewing -> {Incrementing, Editing, ForceAdding, Cancelled} -> Idle
type Resolver struct {
	state  ResolutionState
	staged *models.Product
}

// State returns the current workflow state.
func (r *Resolver) State() ResolutionState {
	return r.state
}

// Staged returns the existing record held while the user decides how to
// resolve a detected duplicate, or nil.
func (r *Resolver) Staged() *models.Product {
	return r.staged
}

// Type records that the user is editing the candidate name and returns the
// suggestions from the loaded page, in page order. An empty input returns the
// form to Idle.
func (r *Resolver) Type(input string, loaded []models.Product) []models.Product {
	if strings.TrimSpace(input) == "" {
		r.state = StateIdle
		return nil
	}
	r.state = StateTyping

	var suggestions []models.Product
	for _, p := range loaded {
		if matching.Matches(input, p.Name) {
			suggestions = append(suggestions, p)
		}
	}
	return suggestions
}

// Submit routes the candidate name on form submit. A strict normalized-equality
// match against the loaded page stages that record and moves to Reviewing;
// otherwise the workflow stays out of review and the caller should create.
// Suggestions are permissive, but only exact normalized equality gates here.
func (r *Resolver) Submit(name string, loaded []models.Product) (*models.Product, bool) {
	for i := range loaded {
		if matching.Equal(name, loaded[i].Name) {
			r.staged = &loaded[i]
			r.state = StateReviewing
			return r.staged, true
		}
	}
	r.state = StateIdle
	r.staged = nil
	return nil, false
}

// Stage moves a server-reported duplicate into Reviewing. This covers records
// the server knows about beyond the currently loaded page.
func (r *Resolver) Stage(existing models.Product) *models.Product {
	r.staged = &existing
	r.state = StateReviewing
	return r.staged
}

// BeginIncrement chooses the "add to existing quantity" resolution.
func (r *Resolver) BeginIncrement() (*models.Product, error) {
	return r.begin(StateIncrementing)
}

// BeginEdit chooses the "edit category/priority of existing" resolution.
func (r *Resolver) BeginEdit() (*models.Product, error) {
	return r.begin(StateEditing)
}

// BeginForceAdd chooses the "create as new anyway" resolution.
func (r *Resolver) BeginForceAdd() (*models.Product, error) {
	return r.begin(StateForceAdding)
}

func (r *Resolver) begin(next ResolutionState) (*models.Product, error) {
	if r.state != StateReviewing || r.staged == nil {
		return nil, ErrNotReviewing
	}
	r.state = next
	return r.staged, nil
}

// Cancel abandons the staged duplicate without any API call.
func (r *Resolver) Cancel() {
	r.state = StateCancelled
	r.staged = nil
}

// Finish returns the workflow to Idle after a resolution completed (or was
// cancelled) and drops the staged record.
func (r *Resolver) Finish() {
	r.state = StateIdle
	r.staged = nil
}
