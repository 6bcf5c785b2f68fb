package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Anhamd/fitbazzar/internal/apperr"
	"github.com/Anhamd/fitbazzar/internal/order"
	"github.com/Anhamd/fitbazzar/internal/product"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Message string
	Token   string
}

type SellerApplication struct {
	BoutiqueName string `json:"boutiqueName"`
	TradeLicense string `json:"tradeLicense"`
	Description  string `json:"description"`
}

// Client talks to the Fit Bazaar REST API. Calls are never retried.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the API rooted at baseURL, for example
// http://localhost:3000/api.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the union of the response bodies the API sends.
type envelope struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Error         string `json:"error"`
	Token         string `json:"token"`
	OrderID       int64  `json:"orderId"`
	ApplicationID int64  `json:"applicationId"`
}

func (c *Client) Products(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) SubmitOrder(ctx context.Context, req order.CreateRequest) (order.Receipt, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/orders", req, &env); err != nil {
		return order.Receipt{}, err
	}
	return order.Receipt{Success: env.Success, OrderID: env.OrderID}, nil
}

func (c *Client) Register(ctx context.Context, creds Credentials) (string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/register", creds, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", apperr.Validation(env.Message)
	}
	return env.Message, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/login", creds, &env); err != nil {
		return LoginResult{}, err
	}
	if !env.Success {
		return LoginResult{}, apperr.Auth(env.Message)
	}
	return LoginResult{Message: env.Message, Token: env.Token}, nil
}

func (c *Client) ApplySeller(ctx context.Context, app SellerApplication) (int64, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/apply-seller", app, &env); err != nil {
		return 0, err
	}
	if !env.Success {
		return 0, apperr.Validation(env.Error)
	}
	return env.ApplicationID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return apperr.Fetch("Could not reach the server", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return apperr.Fetch("Could not read the server response", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return apperr.FromStatus(res.StatusCode, msg)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Fetch("The server sent an unexpected response", err)
	}
	return nil
}
