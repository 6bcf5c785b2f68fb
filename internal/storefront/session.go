package storefront

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/order"
)

// API is everything a Session needs from the backend. *Client implements it.
type API interface {
	ProductSource
	OrderSubmitter
	Register(ctx context.Context, creds Credentials) (string, error)
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	ApplySeller(ctx context.Context, app SellerApplication) (int64, error)
}

// Session is the state of one shopper: the loaded catalog, the cart and
// the login token.
type Session struct {
	ID      string
	Catalog *Catalog
	Cart    *Cart

	api      API
	checkout *Checkout

	mu    sync.RWMutex
	token string
}

func NewSession(api API) *Session {
	catalog := NewCatalog(api)
	return &Session{
		ID:       uuid.NewString(),
		Catalog:  catalog,
		Cart:     NewCart(catalog),
		api:      api,
		checkout: NewCheckout(api),
	}
}

func (s *Session) LoadCatalog(ctx context.Context) error {
	return s.Catalog.Load(ctx)
}

func (s *Session) AddToCart(id int64) (View, error) {
	if err := s.Cart.Add(id); err != nil {
		return s.Cart.View(), err
	}
	return s.Cart.View(), nil
}

func (s *Session) Checkout(ctx context.Context, payment string) (order.Receipt, error) {
	return s.checkout.Submit(ctx, s.Cart, payment)
}

func (s *Session) Register(ctx context.Context, email, password string) (string, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return "", err
	}
	return s.api.Register(ctx, creds)
}

// Login authenticates and keeps the issued token on the session.
func (s *Session) Login(ctx context.Context, email, password string) (string, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return "", err
	}
	res, err := s.api.Login(ctx, creds)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.token = res.Token
	s.mu.Unlock()
	return res.Message, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ApplySeller(ctx context.Context, app SellerApplication) (int64, error) {
	app.BoutiqueName = strings.TrimSpace(app.BoutiqueName)
	app.TradeLicense = strings.TrimSpace(app.TradeLicense)
	app.Description = strings.TrimSpace(app.Description)
	if app.BoutiqueName == "" || app.TradeLicense == "" || app.Description == "" {
		return 0, apperr.Validation("Please fill in all fields to apply.")
	}
	return s.api.ApplySeller(ctx, app)
}

func credentials(email, password string) (Credentials, error) {
	creds := Credentials{Email: strings.TrimSpace(email), Password: strings.TrimSpace(password)}
	if creds.Email == "" || creds.Password == "" {
		return Credentials{}, apperr.Validation("Please fill in both fields.")
	}
	return creds, nil
}

// Notice turns the outcome of any session command into the single message
// shown to the shopper.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, apperr.ErrFetch):
		return apperr.Message(err, "Could not reach Fit Bazaar. Check if the server is running.")
	case errors.Is(err, apperr.ErrStorage):
		return "Something went wrong on our side. Please try again."
	default:
		return "Error: " + apperr.Message(err, err.Error())
	}
}
