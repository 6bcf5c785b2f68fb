package order

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupApp(repo Repository) *fiber.App {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := fiber.New()
	NewHandler(NewService(repo, catalog), log).RegisterPublicRoutes(app)
	return app
}

func postOrder(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	out := map[string]any{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return res.StatusCode, out
}

func TestCreateOrder_Success(t *testing.T) {
	app := setupApp(NewInMemoryRepository())

	status, body := postOrder(t, app, `{"items":[{"id":1,"name":"Yoga Mat","price":500},{"id":2,"name":"Kettlebell","price":1200}],"total":1700,"payment":"bkash"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}
	if body["success"] != true || body["orderId"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	app := setupApp(NewInMemoryRepository())

	status, body := postOrder(t, app, `{"items":[],"total":0,"payment":"cash"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["success"] != false || body["error"] != "Cart is empty" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateOrder_StorageFailure(t *testing.T) {
	app := setupApp(failingRepo{})

	status, body := postOrder(t, app, `{"items":[{"id":1}],"total":500,"payment":"cash"}`)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("unexpected body: %v", body)
	}
}
