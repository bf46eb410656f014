package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/younger1612/Rd-storev1/internal/config"
	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Degraded mode: a nil db wires the in-memory store, the same routes answer,
// and order writes are refused with 503.

func degradedServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		RateLimitPerMin:    10000,
	}
	r, err := New(cfg, nil, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestDegradedHealthReportsMode(t *testing.T) {
	srv := degradedServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "degraded", health.Database)
}

func TestDegradedCatalogIsSeeded(t *testing.T) {
	srv := degradedServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Success bool            `json:"success"`
		Data    []model.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.Len(t, env.Data, len(model.DemoCatalog()))
}

func TestDegradedRefusesOrders(t *testing.T) {
	srv := degradedServer(t)

	body, err := json.Marshal(map[string]any{
		"customer_name": "Alex",
		"total_amount":  "100.00",
		"items": []map[string]any{
			{"productName": "Widget", "quantity": 1, "price": "100.00"},
		},
	})
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+"/api/orders", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDegradedPurchaseStillBlends(t *testing.T) {
	srv := degradedServer(t)

	body, err := json.Marshal(map[string]any{
		"productName":     "Hand-wound Cable",
		"isCustomProduct": true,
		"quantity":        3,
		"unitCost":        "12.00",
		"purchaseDate":    "2026-08-01",
	})
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+"/api/purchases", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	list, err := srv.Client().Get(srv.URL + "/api/products")
	require.NoError(t, err)
	defer list.Body.Close()
	var env struct {
		Data []model.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(list.Body).Decode(&env))
	found := false
	for _, p := range env.Data {
		if p.Name == "Hand-wound Cable" {
			found = true
			assert.Equal(t, 3, p.CurrentStock)
			assert.Equal(t, model.CategoryCustom, p.Category)
		}
	}
	assert.True(t, found)
}

func TestLoginIssuesToken(t *testing.T) {
	srv := degradedServer(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	resp, err := srv.Client().Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.NotEmpty(t, env.Data.Token)
}

func TestAuthRequiredGuardsMutations(t *testing.T) {
	cfg := &config.Config{
		Env:                "test",
		AuthRequired:       true,
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		RateLimitPerMin:    10000,
	}
	r, err := New(cfg, nil, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// reads stay open
	resp, err := srv.Client().Get(srv.URL + "/api/products")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// mutations need a token
	resp, err = srv.Client().Post(srv.URL+"/api/products", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
