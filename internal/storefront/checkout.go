package storefront

import (
	"context"
	"errors"
	"sync"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/order"
)

var (
	ErrEmptyCart          = apperr.Validation("Your cart is empty!")
	ErrCheckoutInProgress = &apperr.Error{Kind: apperr.ErrValidation, Message: "Your order is already being placed", Err: errors.New("checkout in progress")}
)

// OrderSubmitter sends a finished order to the backend.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, req order.CreateRequest) (order.Receipt, error)
}

// Checkout turns a cart into a placed order. One Checkout allows a single
// submission at a time.
type Checkout struct {
	submitter OrderSubmitter
	mu        sync.Mutex
}

func NewCheckout(submitter OrderSubmitter) *Checkout {
	return &Checkout{submitter: submitter}
}

// Submit submits every line currently in the cart. On success exactly those
// lines are removed from the cart and the backend's order id is returned.
// On any failure the cart is left as it was and nothing is retried.
func (c *Checkout) Submit(ctx context.Context, cart *Cart, payment string) (order.Receipt, error) {
	if !c.mu.TryLock() {
		return order.Receipt{}, ErrCheckoutInProgress
	}
	defer c.mu.Unlock()

	lines := cart.Lines()
	if len(lines) == 0 {
		return order.Receipt{}, ErrEmptyCart
	}

	receipt, err := c.submitter.SubmitOrder(ctx, order.CreateRequest{
		Items:   lines,
		Total:   sum(lines),
		Payment: payment,
	})
	if err != nil {
		return order.Receipt{}, err
	}
	if !receipt.Success || receipt.OrderID <= 0 {
		return order.Receipt{}, apperr.Fetch("Failed to place order. Please try again.", errors.New("order was not confirmed"))
	}

	cart.discard(len(lines))
	return receipt, nil
}
