package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-movements-api/internal/application/analytics"
	"github.com/jhoicas/inventory-movements-api/internal/application/auth"
	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/inventory-movements-api/internal/application/usecase"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository/mocks"
	apphttp "github.com/jhoicas/inventory-movements-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-movements-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app   *fiber.App
	store *inventorytest.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := inventorytest.NewStore()
	log := zerolog.Nop()
	policy := usecase.ProductPolicy{DeletePolicy: config.DeletePolicyRestrict, StockEditPolicy: config.StockEditOverride}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(store, store.Products(), store.Movements(), nil, policy, log),
		MovementUC:  inventory.NewMovementUseCase(store, store.Movements(), log),
		ReconcileUC: inventory.NewReconcileUseCase(store, store.Movements(), store.Products(), log),
		SummaryUC:   analytics.NewSummaryUseCase(new(mocks.MockSummaryRepository)),
		AuthUC:      auth.NewAuthUseCase(new(mocks.MockUserRepository), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin}),
		JWTSecret:   testJWTSecret,
	})
	return &testAPI{app: app, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, role, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (a *testAPI) createProduct(t *testing.T, sku string, stock int) dto.ProductResponse {
	t.Helper()
	body := `{"name":"Producto ` + sku + `","sku":"` + sku + `","price":"10","stock":"` + itoa(stock) + `"}`
	resp, raw := a.do(t, http.MethodPost, "/api/products", "admin", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &p))
	return p
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SaleFlowWithFormStrings(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "CAFE-500", 100)
	assert.Equal(t, 100, p.Stock)

	resp, raw := api.do(t, http.MethodPost, "/api/sales", "seller",
		`{"product_id":"`+p.ID+`","quantity":"30","date":"2024-05-31","customer_name":"Ana","price":"12.5"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var sale dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &sale))
	assert.Equal(t, "sale", sale.Type)
	assert.Equal(t, 30, sale.Quantity)
	assert.Equal(t, "pending", sale.PaymentStatus)
	assert.Equal(t, 70, api.store.Product(p.ID).Stock)

	resp, raw = api.do(t, http.MethodGet, "/api/products/"+p.ID+"/movements", "seller", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history dto.MovementHistoryResponse
	require.NoError(t, json.Unmarshal(raw, &history))
	assert.Equal(t, 70, history.Product.Stock)
	assert.Len(t, history.Movements, 2)

	resp, _ = api.do(t, http.MethodDelete, "/api/sales/"+sale.ID, "admin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 100, api.store.Product(p.ID).Stock)
}

func TestRouter_MovementErrors(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "A", 10)

	resp, _ := api.do(t, http.MethodPost, "/api/inputs", "warehouse", `{"product_id":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "cuerpo malformado")

	resp, raw := api.do(t, http.MethodPost, "/api/inputs", "warehouse",
		`{"product_id":"`+p.ID+`","quantity":"0","date":"2024-05-31"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")

	resp, _ = api.do(t, http.MethodPost, "/api/outputs", "warehouse",
		`{"product_id":"00000000-0000-0000-0000-0000000000ff","quantity":1,"date":"2024-05-31"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "producto inexistente")

	resp, _ = api.do(t, http.MethodPut, "/api/outputs/no-existe", "warehouse",
		`{"product_id":"`+p.ID+`","quantity":1,"date":"2024-05-31"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 10, api.store.Product(p.ID).Stock)
}

func TestRouter_RoleGroups(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodGet, "/api/inputs", "seller", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/sales", "warehouse", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/sales", "seller", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/products", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ProductLifecycle(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "A", 5)

	resp, _ := api.do(t, http.MethodPost, "/api/products", "admin", `{"name":"Otro","sku":"A"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "sku duplicado")

	resp, _ = api.do(t, http.MethodGet, "/api/products/"+p.ID, "seller", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := api.do(t, http.MethodDelete, "/api/products/"+p.ID, "admin", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "restrict con movimientos")
	assert.Contains(t, string(raw), "CONFLICT")

	resp, _ = api.do(t, http.MethodGet, "/api/products/no-existe", "seller", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ReconcileRepairsDrift(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "A", 40)
	api.store.SetStock(p.ID, 7)

	resp, raw := api.do(t, http.MethodPost, "/api/products/"+p.ID+"/reconcile", "admin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out dto.ReconcileResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 7, out.PreviousStock)
	assert.Equal(t, 40, out.Stock)
	assert.Equal(t, 40, api.store.Product(p.ID).Stock)

	resp, _ = api.do(t, http.MethodPost, "/api/products/"+p.ID+"/reconcile", "warehouse", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_WritesLogActor(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	api := newTestAPI(t)
	p := api.createProduct(t, "TE-1", 10)

	resp, raw := api.do(t, http.MethodPost, "/api/sales", "seller",
		`{"product_id":"`+p.ID+`","quantity":2,"date":"2024-05-31"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var sale dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &sale))

	buf.Reset()
	resp, _ = api.do(t, http.MethodDelete, "/api/sales/"+sale.ID, "admin", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry map[string]string
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
	assert.Equal(t, testUserID, entry["actor"])
	assert.Equal(t, "admin", entry["role"])
	assert.Equal(t, "delete", entry["action"])
	assert.Equal(t, "sale", entry["resource"])
	assert.Equal(t, sale.ID, entry["id"])

	buf.Reset()
	resp, _ = api.do(t, http.MethodDelete, "/api/sales/"+sale.ID, "admin", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotContains(t, buf.String(), `"action":"delete"`, "un fallo no se registra como escritura")
}
