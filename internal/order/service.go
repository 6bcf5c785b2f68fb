package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/product"
)

// PriceSource returns authoritative product rows by id.
type PriceSource interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]product.Product, error)
}

// Service provides business logic for orders.
type Service struct {
	repo   Repository
	prices PriceSource
	now    func() time.Time
}

func NewService(r Repository, prices PriceSource) *Service {
	return &Service{repo: r, prices: prices, now: time.Now}
}

// Create validates the request against the catalog and stores the order.
// The client-supplied total must equal the sum of the current catalog prices
// of the items; line names and prices are taken from the catalog, not the
// request.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Order, error) {
	if len(req.Items) == 0 {
		return Order{}, apperr.Validation("Cart is empty")
	}
	payment := strings.TrimSpace(req.Payment)
	if payment == "" {
		return Order{}, apperr.Validation("Payment method is required")
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ID)
	}
	known, err := s.prices.GetByIDs(ctx, ids)
	if err != nil {
		return Order{}, err
	}

	items := make([]product.Product, 0, len(req.Items))
	var total int64
	for _, item := range req.Items {
		p, ok := known[item.ID]
		if !ok {
			return Order{}, apperr.Validation(fmt.Sprintf("Unknown product %d", item.ID))
		}
		items = append(items, p)
		total += p.Price
	}
	if total != req.Total {
		return Order{}, apperr.Validation(fmt.Sprintf("Order total %d does not match current prices (%d)", req.Total, total))
	}

	created, err := s.repo.Create(ctx, Order{
		Items:     items,
		Total:     total,
		Payment:   payment,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return Order{}, apperr.Storage(err)
	}
	return created, nil
}
