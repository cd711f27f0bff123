package controller

import (
	"strings"

	"bolucompras/internal/models"
)

// Row is one rendered line of the product list.
type Row struct {
	ID        string
	Name      string
	Quantity  int
	Categoria string
	Stars     string
	Purchased bool
}

// Stars renders a priority as a star string; the star count equals the
// stored prioridad. Out-of-range values render empty.
func Stars(prioridad int) string {
	if prioridad < 1 || prioridad > 5 {
		return ""
	}
	return strings.Repeat("★", prioridad)
}

// RenderRows renders a page of products as list rows, preserving page order.
func RenderRows(products []models.Product) []Row {
	rows := make([]Row, len(products))
	for i, p := range products {
		rows[i] = Row{
			ID:        p.ID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Categoria: p.Categoria,
			Stars:     Stars(p.Prioridad),
			Purchased: p.Purchased,
		}
	}
	return rows
}

// Rows renders the currently loaded page.
func (pc *PageController) Rows() []Row {
	return RenderRows(pc.state.Products)
}
