//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - purchase intake → weighted-average blend → manual adjustment with audit
//   - order creation with stored subtotal, without any stock side effect
//   - product delete guard against ledger references
//   - health endpoint reporting the connected mode

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/younger1612/Rd-storev1/internal/config"
	"github.com/younger1612/Rd-storev1/internal/infra"
	"github.com/younger1612/Rd-storev1/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("inventory_test"),
		tcPostgres.WithUsername("inventory"),
		tcPostgres.WithPassword("inventory"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	redisC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	redisURL, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := infra.NewDatabase(pgURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(redisURL)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "e2e-secret",
		JWTExpirationHours: 1,
		RateLimitPerMin:    10000,
	}
	r, err := router.New(cfg, db, rdb)
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type productJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	CurrentPrice string `json:"current_price"`
}

func findProduct(t *testing.T, srv *httptest.Server, name string) *productJSON {
	t.Helper()
	resp := do(t, srv, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	decodeJSON(t, resp, &env)
	var products []productJSON
	require.NoError(t, json.Unmarshal(env.Data, &products))
	for i := range products {
		if products[i].Name == name {
			return &products[i]
		}
	}
	return nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestInventoryLifecycle(t *testing.T) {
	srv := setupServer(t)

	// health reports the database mode
	resp := do(t, srv, http.MethodGet, "/api/health", nil)
	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	decodeJSON(t, resp, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "connected", health.Database)

	// first intake creates the product: stock 10, cost 100
	resp = do(t, srv, http.MethodPost, "/api/purchases", jsonBody(t, map[string]any{
		"productName":     "Widget",
		"isCustomProduct": true,
		"quantity":        10,
		"unitCost":        "100.00",
		"purchaseDate":    "2026-08-01",
		"supplier":        "Acme",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	widget := findProduct(t, srv, "Widget")
	require.NotNil(t, widget)
	assert.Equal(t, 10, widget.CurrentStock)
	assert.Equal(t, "100", trimZeros(widget.CurrentPrice))

	// second intake blends: (10·100 + 10·200) / 20 = 150
	resp = do(t, srv, http.MethodPost, "/api/purchases", jsonBody(t, map[string]any{
		"productName":     "Widget",
		"isCustomProduct": true,
		"quantity":        10,
		"unitCost":        "200.00",
		"purchaseDate":    "2026-08-02",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	widget = findProduct(t, srv, "Widget")
	require.NotNil(t, widget)
	assert.Equal(t, 20, widget.CurrentStock)
	assert.Equal(t, "150", trimZeros(widget.CurrentPrice))

	// manual shrinkage adjustment: 20 → 15, audited
	resp = do(t, srv, http.MethodPut, "/api/products/"+widget.ID+"/stock", jsonBody(t, map[string]any{
		"stock":  15,
		"reason": "shrinkage",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adjust struct {
		Success  bool `json:"success"`
		OldStock int  `json:"oldStock"`
		NewStock int  `json:"newStock"`
	}
	decodeJSON(t, resp, &adjust)
	assert.True(t, adjust.Success)
	assert.Equal(t, 20, adjust.OldStock)
	assert.Equal(t, 15, adjust.NewStock)

	resp = do(t, srv, http.MethodGet, "/api/products/"+widget.ID+"/adjustments", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	decodeJSON(t, resp, &env)
	var history []struct {
		AdjustmentType string `json:"adjustment_type"`
		Reason         string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "stock", history[0].AdjustmentType)
	assert.Equal(t, "shrinkage", history[0].Reason)

	// an order records the sale but leaves stock at 15
	resp = do(t, srv, http.MethodPost, "/api/orders", jsonBody(t, map[string]any{
		"customer_name": "Alex",
		"total_amount":  "1500.00",
		"items": []map[string]any{{
			"productId":   widget.ID,
			"productName": "Widget",
			"quantity":    5,
			"price":       "300.00",
		}},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var orderEnv envelope
	decodeJSON(t, resp, &orderEnv)
	var created struct {
		ID         string `json:"id"`
		ItemsCount int    `json:"items_count"`
	}
	require.NoError(t, json.Unmarshal(orderEnv.Data, &created))
	assert.Equal(t, 1, created.ItemsCount)

	widget = findProduct(t, srv, "Widget")
	require.NotNil(t, widget)
	assert.Equal(t, 15, widget.CurrentStock, "order creation must not decrement stock")

	// the stored subtotal column computed 5 × 300
	resp = do(t, srv, http.MethodGet, "/api/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var getEnv envelope
	decodeJSON(t, resp, &getEnv)
	var order struct {
		Items []struct {
			Subtotal string `json:"subtotal"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(getEnv.Data, &order))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "1500", trimZeros(order.Items[0].Subtotal))

	// the product is referenced by purchases and an order item: delete refused
	resp = do(t, srv, http.MethodDelete, "/api/products/"+widget.ID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestPurchaseEditDoesNotReplayIntake(t *testing.T) {
	srv := setupServer(t)

	resp := do(t, srv, http.MethodPost, "/api/purchases", jsonBody(t, map[string]any{
		"productName":     "Gadget",
		"isCustomProduct": true,
		"quantity":        10,
		"unitCost":        "50.00",
		"purchaseDate":    "2026-08-01",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var env envelope
	decodeJSON(t, resp, &env)
	var purchase struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &purchase))

	resp = do(t, srv, http.MethodPut, "/api/purchases/"+purchase.ID, jsonBody(t, map[string]any{
		"quantity": 4,
		"unitCost": "80.00",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updEnv envelope
	decodeJSON(t, resp, &updEnv)
	var updated struct {
		TotalCost string `json:"total_cost"`
	}
	require.NoError(t, json.Unmarshal(updEnv.Data, &updated))
	assert.Equal(t, "320", trimZeros(updated.TotalCost))

	gadget := findProduct(t, srv, "Gadget")
	require.NotNil(t, gadget)
	assert.Equal(t, 10, gadget.CurrentStock, "editing the ledger must not touch the product")
	assert.Equal(t, "50", trimZeros(gadget.CurrentPrice))
}

// trimZeros normalizes a decimal wire value ("150.00", "150") for comparison.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
