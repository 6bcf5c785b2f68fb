package storefront

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/order"
)

type stubSubmitter struct {
	receipt order.Receipt
	err     error
	calls   atomic.Int32
	last    order.CreateRequest
	// when set, SubmitOrder blocks until released
	release chan struct{}
	entered chan struct{}
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, req order.CreateRequest) (order.Receipt, error) {
	s.calls.Add(1)
	s.last = req
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.receipt, s.err
}

func TestCheckout_WorkedExample(t *testing.T) {
	cart := NewCart(loadedCatalog(t))
	require.NoError(t, cart.Add(1))
	require.NoError(t, cart.Add(1))
	require.NoError(t, cart.Add(2))
	require.Equal(t, 3, cart.Len())
	require.Equal(t, int64(2200), cart.Total())

	sub := &stubSubmitter{receipt: order.Receipt{Success: true, OrderID: 7}}
	receipt, err := NewCheckout(sub).Submit(context.Background(), cart, "cash")
	require.NoError(t, err)

	assert.Equal(t, int64(7), receipt.OrderID)
	assert.Zero(t, cart.Len())
	assert.Equal(t, int64(2200), sub.last.Total)
	assert.Len(t, sub.last.Items, 3)
	assert.Equal(t, "cash", sub.last.Payment)
}

func TestCheckout_EmptyCartMakesNoCall(t *testing.T) {
	sub := &stubSubmitter{receipt: order.Receipt{Success: true, OrderID: 1}}

	_, err := NewCheckout(sub).Submit(context.Background(), NewCart(loadedCatalog(t)), "cash")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, sub.calls.Load())
}

func TestCheckout_FailureLeavesCartIntact(t *testing.T) {
	tests := []struct {
		name string
		sub  *stubSubmitter
		kind error
	}{
		{"transport", &stubSubmitter{err: apperr.Fetch("Could not reach the server", errors.New("dial tcp"))}, apperr.ErrFetch},
		{"server error", &stubSubmitter{err: apperr.FromStatus(500, "internal server error")}, apperr.ErrStorage},
		{"not confirmed", &stubSubmitter{receipt: order.Receipt{Success: false}}, apperr.ErrFetch},
		{"missing order id", &stubSubmitter{receipt: order.Receipt{Success: true}}, apperr.ErrFetch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart(loadedCatalog(t))
			require.NoError(t, cart.Add(2))

			_, err := NewCheckout(tt.sub).Submit(context.Background(), cart, "card")
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, 1, cart.Len())
			assert.Equal(t, int32(1), tt.sub.calls.Load())
		})
	}
}

func TestCheckout_OneSubmissionAtATime(t *testing.T) {
	cart := NewCart(loadedCatalog(t))
	require.NoError(t, cart.Add(1))

	sub := &stubSubmitter{
		receipt: order.Receipt{Success: true, OrderID: 3},
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	checkout := NewCheckout(sub)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = checkout.Submit(context.Background(), cart, "cash")
	}()
	<-sub.entered

	_, err := checkout.Submit(context.Background(), cart, "cash")
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(sub.release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, int32(1), sub.calls.Load())
	assert.Zero(t, cart.Len())
}

func TestCheckout_KeepsLinesAddedDuringSubmission(t *testing.T) {
	cart := NewCart(loadedCatalog(t))
	require.NoError(t, cart.Add(1))

	sub := &stubSubmitter{
		receipt: order.Receipt{Success: true, OrderID: 4},
		release: make(chan struct{}),
		entered: make(chan struct{}, 1),
	}

	done := make(chan error, 1)
	go func() {
		_, err := NewCheckout(sub).Submit(context.Background(), cart, "cash")
		done <- err
	}()
	<-sub.entered
	require.NoError(t, cart.Add(2))
	close(sub.release)
	require.NoError(t, <-done)

	require.Len(t, sub.last.Items, 1)
	assert.Equal(t, int64(1), sub.last.Items[0].ID)
	assert.Equal(t, int64(500), sub.last.Total)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ID)
}
