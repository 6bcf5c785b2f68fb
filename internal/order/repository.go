package order

import (
	"context"
	"sync"

	"github.com/Anhamd/fitbazzar/internal/product"
)

// Repository defines persistence operations for orders. Orders are
// write-only from the API's point of view.
type Repository interface {
	Create(ctx context.Context, ord Order) (Order, error)
}

type InMemoryRepository struct {
	mu     sync.Mutex
	orders []Order
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ctx context.Context, ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	stored := ord
	stored.Items = append([]product.Product(nil), ord.Items...)
	r.orders = append(r.orders, stored)
	return ord, nil
}

// Orders returns a copy of every stored order.
func (r *InMemoryRepository) Orders() []Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, len(r.orders))
	for i, ord := range r.orders {
		ord.Items = append([]product.Product(nil), ord.Items...)
		out[i] = ord
	}
	return out
}
