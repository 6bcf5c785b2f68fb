package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/product"
)

type stubPrices map[int64]product.Product

func (s stubPrices) GetByIDs(_ context.Context, ids []int64) (map[int64]product.Product, error) {
	out := map[int64]product.Product{}
	for _, id := range ids {
		if p, ok := s[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

var catalog = stubPrices{
	1: {ID: 1, Name: "Yoga Mat", Price: 500},
	2: {ID: 2, Name: "Kettlebell", Price: 1200},
}

func TestCreate_RecomputesTotalAndSnapshotsItems(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, catalog)

	ord, err := svc.Create(context.Background(), CreateRequest{
		Items: []product.Product{
			{ID: 1, Name: "renamed by client", Price: 1},
			{ID: 1},
			{ID: 2},
		},
		Total:   2200,
		Payment: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ord.ID)
	assert.Equal(t, int64(2200), ord.Total)
	require.Len(t, ord.Items, 3)
	assert.Equal(t, "Yoga Mat", ord.Items[0].Name)
	assert.Equal(t, int64(500), ord.Items[0].Price)
	assert.False(t, ord.CreatedAt.IsZero())
	assert.Len(t, repo.Orders(), 1)
}

func TestCreate_StoredItemsAreFrozen(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, catalog)

	req := CreateRequest{Items: []product.Product{{ID: 1}, {ID: 2}}, Total: 1700, Payment: "card"}
	ord, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	req.Items[0] = product.Product{ID: 2, Name: "swapped", Price: 1}
	req.Items = append(req.Items, product.Product{ID: 1})
	ord.Items[1].Price = 0
	repo.Orders()[0].Items[0].Name = "edited"

	stored := repo.Orders()
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Items, 2)
	assert.Equal(t, product.Product{ID: 1, Name: "Yoga Mat", Price: 500}, stored[0].Items[0])
	assert.Equal(t, product.Product{ID: 2, Name: "Kettlebell", Price: 1200}, stored[0].Items[1])
	assert.Equal(t, int64(1700), stored[0].Total)
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"empty items", CreateRequest{Total: 0, Payment: "cash"}},
		{"blank payment", CreateRequest{Items: []product.Product{{ID: 1}}, Total: 500, Payment: "  "}},
		{"unknown product", CreateRequest{Items: []product.Product{{ID: 99}}, Total: 500, Payment: "cash"}},
		{"id beyond int32", CreateRequest{Items: []product.Product{{ID: 1 << 40}}, Total: 500, Payment: "cash"}},
		{"total mismatch", CreateRequest{Items: []product.Product{{ID: 1}}, Total: 1, Payment: "cash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewInMemoryRepository()
			_, err := NewService(repo, catalog).Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Empty(t, repo.Orders())
		})
	}
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, Order) (Order, error) {
	return Order{}, errors.New("disk full")
}

func TestCreate_StorageFailure(t *testing.T) {
	_, err := NewService(failingRepo{}, catalog).Create(context.Background(), CreateRequest{
		Items:   []product.Product{{ID: 2}},
		Total:   1200,
		Payment: "card",
	})
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.Equal(t, "internal server error", apperr.Message(err, ""))
}
