package client

// Categories is the fixed category catalogue shown in the add-product form.
// It lives on the client side only; the server accepts any string.
var Categories = []string{
	"General",
	"Alimentos",
	"Lácteos",
	"Ropa",
	"Bebidas",
	"Frutas y Verduras",
	"Panadería",
	"Congelados",
	"Cereales y Granos",
	"Condimentos y Salsas",
	"Productos de Despensa",
	"Mascotas",
	"Cuidado Personal",
	"Otros",
}

// IsKnownCategory reports whether name is in the catalogue.
func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
