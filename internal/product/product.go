package product

// Product is a purchasable catalog item and maps to the `products` table.
// Price is a whole number of taka.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}
