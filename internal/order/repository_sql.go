package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Anhamd/fitbazzar/internal/database"
)

type SQLRepository struct {
	db *database.DB
}

const insertOrderQuery = `INSERT INTO orders (items, total, payment_method, created_at) VALUES (?, ?, ?, ?)`

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, fmt.Errorf("marshal order items: %w", err)
	}

	id, err := r.db.InsertID(ctx, insertOrderQuery, string(itemsJSON), ord.Total, ord.Payment, ord.CreatedAt)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}
	ord.ID = id
	return ord, nil
}
