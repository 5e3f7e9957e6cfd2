//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - credit order: create → add lines → confirm → installment schedule
//   - payment ledger: record against an installment, states re-derived
//   - BOM: edges → availability → consume for a production order
//   - text command round-trip through POST /v1/commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/config"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/infra"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/router"

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

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("tecnoweb_test"),
		tcPostgres.WithUsername("tecnoweb"),
		tcPostgres.WithPassword("tecnoweb"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           8000,
		Env:            "test",
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		WorkerPoolSize: 1,
		CompanyName:    "TecnoWeb E2E",
		PDFStoragePath: t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r, _ := router.New(cfg, db, rdb, smtpCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv}
}

// createEntity POSTs body to path and returns the id of the created resource.
func (env *testEnv) createEntity(t *testing.T, path string, body map[string]any) string {
	t.Helper()
	resp := do(t, env.server, "POST", path, jsonBody(t, body))
	require.Equal(t, http.StatusCreated, resp.StatusCode, "POST %s", path)
	var out struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &out)
	require.NotEmpty(t, out.ID)
	return out.ID
}

func (env *testEnv) seedDirectory(t *testing.T) (clientID, userID string) {
	t.Helper()
	clientID = env.createEntity(t, "/v1/clients", map[string]any{
		"ci": "1234567", "name": "Maria Flores", "email": "maria@example.com",
	})
	userID = env.createEntity(t, "/v1/users", map[string]any{
		"ci": "9999999", "name": "Ana Vendedora", "role": "seller",
	})
	return clientID, userID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CreditOrderLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	clientID, userID := env.seedDirectory(t)

	productID := env.createEntity(t, "/v1/products", map[string]any{
		"sku": "SOFA-3P", "name": "Sofa 3 plazas", "sale_price": "2500.00", "stock": 4,
	})

	orderID := env.createEntity(t, "/v1/orders", map[string]any{
		"client_id": clientID, "user_id": userID, "payment_condition": "Credit",
	})

	resp := do(t, env.server, "POST", "/v1/orders/"+orderID+"/details", jsonBody(t, map[string]any{
		"product_id": productID, "quantity": 2,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/orders/"+orderID+"/confirm", jsonBody(t, map[string]any{
		"installments": 3,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var confirmed struct {
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
	}
	decodeJSON(t, resp, &confirmed)
	assert.Equal(t, "Pending", confirmed.Status)
	assert.Equal(t, "5000.00", confirmed.TotalAmount)

	// 5000/3 → 1666.67 + 1666.67 + 1666.66
	resp = do(t, env.server, "GET", "/v1/orders/"+orderID+"/installments", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var installments []struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Amount string `json:"amount"`
		State  string `json:"state"`
	}
	decodeJSON(t, resp, &installments)
	require.Len(t, installments, 3)
	assert.Equal(t, "1666.67", installments[0].Amount)
	assert.Equal(t, "1666.66", installments[2].Amount)

	// Adding a line after confirm must be rejected.
	resp = do(t, env.server, "POST", "/v1/orders/"+orderID+"/details", jsonBody(t, map[string]any{
		"product_id": productID, "quantity": 1,
	}))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Pay the first installment in full.
	resp = do(t, env.server, "POST", "/v1/payments", jsonBody(t, map[string]any{
		"order_id": orderID, "amount": "1666.67", "payment_type": "cash",
		"installment_id": installments[0].ID,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var payment struct {
		OrderPaymentState string  `json:"order_payment_state"`
		InstallmentState  *string `json:"installment_state"`
	}
	decodeJSON(t, resp, &payment)
	assert.Equal(t, "Partial", payment.OrderPaymentState)
	require.NotNil(t, payment.InstallmentState)
	assert.Equal(t, "Paid", *payment.InstallmentState)
}

func TestE2E_BomConsumeFlow(t *testing.T) {
	env := setupTestEnv(t)
	clientID, userID := env.seedDirectory(t)

	productID := env.createEntity(t, "/v1/products", map[string]any{
		"sku": "SILLA-STD", "name": "Silla estandar", "sale_price": "350.00", "stock": 0,
	})
	supplyID := env.createEntity(t, "/v1/supplies", map[string]any{
		"name": "Madera de pino", "unit_measure": "m2", "stock": "10.00",
	})

	resp := do(t, env.server, "POST", "/v1/bom", jsonBody(t, map[string]any{
		"product_id": productID, "supply_id": supplyID, "required_amount": "0.8",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Order with one line so a production order can reference a detail.
	orderID := env.createEntity(t, "/v1/orders", map[string]any{
		"client_id": clientID, "user_id": userID, "payment_condition": "Cash",
	})
	resp = do(t, env.server, "POST", "/v1/orders/"+orderID+"/details", jsonBody(t, map[string]any{
		"product_id": productID, "quantity": 5,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var detail struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &detail)

	productionID := env.createEntity(t, "/v1/production-orders", map[string]any{
		"order_detail_id": detail.ID,
		"start_date":      "2026-09-01",
		"estimated_date":  "2026-09-15",
	})

	// A second production order on the same detail is a conflict.
	resp = do(t, env.server, "POST", "/v1/production-orders", jsonBody(t, map[string]any{
		"order_detail_id": detail.ID,
		"start_date":      "2026-09-02",
		"estimated_date":  "2026-09-20",
	}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	availURL := fmt.Sprintf("/v1/bom/available?product_id=%s&quantity=%d", productID, 5)
	resp = do(t, env.server, "GET", availURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var avail struct {
		Available bool `json:"available"`
	}
	decodeJSON(t, resp, &avail)
	assert.True(t, avail.Available)

	resp = do(t, env.server, "POST", "/v1/bom/consume", jsonBody(t, map[string]any{
		"product_id": productID, "quantity": 5, "production_order_id": productionID,
	}))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// 10.00 − 5×0.8 = 6.00
	resp = do(t, env.server, "GET", "/v1/supplies/"+supplyID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var supply struct {
		Stock string `json:"stock"`
	}
	decodeJSON(t, resp, &supply)
	assert.Equal(t, "6.00", supply.Stock)

	// Overdraw attempt: 6.00 left, 10 units need 8.00 — rejected, stock intact.
	resp = do(t, env.server, "POST", "/v1/bom/consume", jsonBody(t, map[string]any{
		"product_id": productID, "quantity": 10, "production_order_id": productionID,
	}))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/v1/supplies/"+supplyID, nil)
	decodeJSON(t, resp, &supply)
	assert.Equal(t, "6.00", supply.Stock)
}

func TestE2E_CommandRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	env.seedDirectory(t)

	resp := do(t, env.server, "POST", "/v1/commands", jsonBody(t, map[string]any{
		"command": `INSORD["1234567","9999999","Cash"]`,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Reply string `json:"reply"`
	}
	decodeJSON(t, resp, &out)
	assert.Contains(t, out.Reply, "Maria Flores")

	resp = do(t, env.server, "POST", "/v1/commands", jsonBody(t, map[string]any{
		"command": "HELP[]",
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &out)
	assert.Contains(t, out.Reply, "INSORD")

	resp = do(t, env.server, "POST", "/v1/commands", jsonBody(t, map[string]any{
		"command": "garbage",
	}))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}
