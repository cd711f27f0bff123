package models

import "time"

// Product represents a single shopping-list item.
// JSON field names follow the wire format the frontend expects, which mixes
// English and Spanish (the schema went through several renames).
type Product struct {
	ID                     string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name                   string    `json:"name" gorm:"type:varchar(200)" validate:"required"`
	Precio                 *float64  `json:"precio" validate:"omitempty,gte=0"`
	CantidadPredeterminada int       `json:"cantidad_predeterminada" validate:"gte=0"`
	Quantity               int       `json:"quantity" validate:"gte=0"`
	Categoria              string    `json:"categoria" gorm:"type:varchar(100)"`
	Prioridad              int       `json:"prioridad" validate:"gte=1,lte=5"`
	Purchased              bool      `json:"purchased"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ProductPage is one page of the product list plus pagination metadata.
type ProductPage struct {
	Data       []Product `json:"data"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Total      int64     `json:"total"`
}

// ProductPatch carries the fields a PATCH request may change. Anything not
// listed here is ignored and never reaches the store. Nil means "leave as is".
type ProductPatch struct {
	Quantity  *int    `json:"quantity"`
	Purchased *bool   `json:"purchased"`
	Categoria *string `json:"categoria"`
	Prioridad *int    `json:"prioridad"`
}
