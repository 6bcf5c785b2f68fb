package storefront

import (
	"errors"
	"sync"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/product"
)

// ErrUnknownProduct is returned by Cart.Add for an id that is not in the
// catalog.
var ErrUnknownProduct = &apperr.Error{Kind: apperr.ErrValidation, Message: "That product is not available", Err: errors.New("unknown product")}

// View is what the presentation layer renders after every cart change.
type View struct {
	Count int               `json:"count"`
	Items []product.Product `json:"items"`
	Total int64             `json:"total"`
}

// Cart is an ordered list of product snapshots. Adding the same product
// twice yields two lines.
type Cart struct {
	catalog *Catalog

	mu       sync.Mutex
	lines    []product.Product
	onChange func(View)
}

func NewCart(catalog *Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// OnChange registers the observer notified with a fresh View after every
// mutation. It is called without the cart lock held.
func (c *Cart) OnChange(fn func(View)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Cart) Add(id int64) error {
	p, ok := c.catalog.Lookup(id)
	if !ok {
		return ErrUnknownProduct
	}

	c.mu.Lock()
	c.lines = append(c.lines, p)
	view, fn := c.viewLocked(), c.onChange
	c.mu.Unlock()

	notify(fn, view)
	return nil
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	view, fn := c.viewLocked(), c.onChange
	c.mu.Unlock()

	notify(fn, view)
}

// discard drops the first n lines, the ones a completed checkout submitted.
func (c *Cart) discard(n int) {
	c.mu.Lock()
	if n >= len(c.lines) {
		c.lines = nil
	} else {
		c.lines = append([]product.Product(nil), c.lines[n:]...)
	}
	view, fn := c.viewLocked(), c.onChange
	c.mu.Unlock()

	notify(fn, view)
}

func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sum(c.lines)
}

func (c *Cart) Lines() []product.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]product.Product(nil), c.lines...)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Cart) viewLocked() View {
	items := make([]product.Product, len(c.lines))
	copy(items, c.lines)
	return View{
		Count: len(c.lines),
		Items: items,
		Total: sum(c.lines),
	}
}

func notify(fn func(View), v View) {
	if fn != nil {
		fn(v)
	}
}

func sum(lines []product.Product) int64 {
	var total int64
	for _, p := range lines {
		total += p.Price
	}
	return total
}
