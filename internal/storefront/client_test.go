package storefront

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/order"
	"github.com/Anhamd/fitbazzar/internal/product"
	"github.com/Anhamd/fitbazzar/internal/seller"
	"github.com/Anhamd/fitbazzar/internal/user"
)

// newBackend serves the real handlers over in-memory repositories.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	products := product.NewService(product.NewInMemoryRepository(testProducts), nil, log)
	users := user.NewService(user.NewInMemoryRepository(nil))
	tokens := user.NewTokens("test-secret", time.Hour)

	app := fiber.New()
	product.NewHandler(products, log).RegisterPublicRoutes(app)
	user.NewHandler(users, tokens, log).RegisterPublicRoutes(app)
	order.NewHandler(order.NewService(order.NewInMemoryRepository(), products), log).RegisterPublicRoutes(app)
	seller.NewHandler(seller.NewService(seller.NewInMemoryRepository()), log).RegisterPublicRoutes(app)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AgainstBackend(t *testing.T) {
	srv := newBackend(t)
	s := NewSession(NewClient(srv.URL+"/api/", 5*time.Second))
	ctx := context.Background()

	require.NoError(t, s.LoadCatalog(ctx))
	assert.Equal(t, 2, s.Catalog.Len())

	for _, id := range []int64{1, 1, 2} {
		_, err := s.AddToCart(id)
		require.NoError(t, err)
	}
	receipt, err := s.Checkout(ctx, "cash")
	require.NoError(t, err)
	assert.True(t, receipt.Success)
	assert.Equal(t, int64(1), receipt.OrderID)
	assert.Zero(t, s.Cart.Len())

	msg, err := s.Register(ctx, "lifter@example.com", "deadlift")
	require.NoError(t, err)
	assert.Equal(t, "Registered successfully", msg)

	_, err = s.Register(ctx, "lifter@example.com", "deadlift")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "Error: Email already exists", Notice(err))

	_, err = s.Login(ctx, "lifter@example.com", "nope")
	assert.ErrorIs(t, err, apperr.ErrAuth)

	msg, err = s.Login(ctx, "lifter@example.com", "deadlift")
	require.NoError(t, err)
	assert.Equal(t, "Logged in successfully", msg)
	assert.NotEmpty(t, s.Token())

	id, err := s.ApplySeller(ctx, SellerApplication{BoutiqueName: "Iron Temple", TradeLicense: "TL-2291", Description: "Strength equipment"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestClient_RejectedTotal(t *testing.T) {
	srv := newBackend(t)
	c := NewClient(srv.URL+"/api", 5*time.Second)

	_, err := c.SubmitOrder(context.Background(), order.CreateRequest{
		Items:   []product.Product{{ID: 1, Name: "Yoga Mat", Price: 1}},
		Total:   1,
		Payment: "cash",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
		msg    string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"internal server error"}`, apperr.ErrStorage, "internal server error"},
		{"bad request", http.StatusBadRequest, `{"success":false,"message":"Email and password are required"}`, apperr.ErrValidation, "Email and password are required"},
		{"no body", http.StatusServiceUnavailable, ``, apperr.ErrStorage, "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Products(context.Background())
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.msg, apperr.Message(err, ""))
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Products(context.Background())
	assert.ErrorIs(t, err, apperr.ErrFetch)
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}))
	defer srv.Close()

	catalog := NewCatalog(NewClient(srv.URL, time.Second))
	err := catalog.Load(context.Background())
	assert.ErrorIs(t, err, apperr.ErrFetch)
	assert.Zero(t, catalog.Len())
}
