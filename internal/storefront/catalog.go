// Package storefront is the shopper-side core: the catalog store, the cart,
// order submission and the session that ties them to one shopper.
package storefront

import (
	"context"
	"sync"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/product"
)

// ProductSource supplies the full product listing.
type ProductSource interface {
	Products(ctx context.Context) ([]product.Product, error)
}

// Catalog holds the most recently loaded product listing.
type Catalog struct {
	source ProductSource

	mu       sync.RWMutex
	products []product.Product
	byID     map[int64]product.Product
}

func NewCatalog(source ProductSource) *Catalog {
	return &Catalog{source: source, byID: map[int64]product.Product{}}
}

// Load replaces the catalog with a fresh listing. On failure the catalog is
// left empty and the error is of kind apperr.ErrFetch.
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.source.Products(ctx)
	if err != nil {
		c.reset(nil)
		return apperr.Fetch("Could not load products", err)
	}
	c.reset(products)
	return nil
}

func (c *Catalog) reset(products []product.Product) {
	byID := make(map[int64]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append([]product.Product(nil), products...)
	c.byID = byID
}

// Products returns the listing in load order.
func (c *Catalog) Products() []product.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]product.Product(nil), c.products...)
}

func (c *Catalog) Lookup(id int64) (product.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
