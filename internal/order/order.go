package order

import (
	"time"

	"github.com/Anhamd/fitbazzar/internal/product"
)

// Order is an immutable record of a checkout. Items are snapshots taken at
// the time the order was placed.
type Order struct {
	ID        int64             `json:"id"`
	Items     []product.Product `json:"items"`
	Total     int64             `json:"total"`
	Payment   string            `json:"payment"`
	CreatedAt time.Time         `json:"createdAt"`
}

// CreateRequest is the body of POST /api/orders.
type CreateRequest struct {
	Items   []product.Product `json:"items"`
	Total   int64             `json:"total"`
	Payment string            `json:"payment"`
}

// Receipt is returned to the client once the order is stored.
type Receipt struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}
