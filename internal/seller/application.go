package seller

import "time"

// Application is an intake record from a prospective seller. It is not
// linked to users or orders.
type Application struct {
	ID           int64     `json:"id"`
	BoutiqueName string    `json:"boutiqueName"`
	TradeLicense string    `json:"tradeLicense"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}
