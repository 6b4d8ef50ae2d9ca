package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	apphttp "github.com/jhoicas/inventory-movements-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-movements-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "inventory-movements-test"
	testExpMin    = 60
)

// tokenForRole genera el header Authorization con un JWT del rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// guardedApp monta GET /guarded detrás de AuthMiddleware + RequireRole(allowed...).
func guardedApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func get(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequireRole_Matrix(t *testing.T) {
	stock := []string{entity.RoleAdmin, entity.RoleWarehouse}
	sales := []string{entity.RoleAdmin, entity.RoleSeller}

	cases := []struct {
		name    string
		allowed []string
		role    string
		want    int
	}{
		{"admin en ruta de stock", stock, entity.RoleAdmin, http.StatusOK},
		{"bodega en ruta de stock", stock, entity.RoleWarehouse, http.StatusOK},
		{"vendedor en ruta de stock", stock, entity.RoleSeller, http.StatusForbidden},
		{"vendedor en ruta de ventas", sales, entity.RoleSeller, http.StatusOK},
		{"bodega en ruta de ventas", sales, entity.RoleWarehouse, http.StatusForbidden},
		{"rol desconocido", []string{entity.RoleAdmin}, "root", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, guardedApp(tc.allowed...), tokenForRole(t, tc.role))
			assert.Equal(t, tc.want, status)
			if tc.want == http.StatusForbidden {
				assert.Contains(t, body, "FORBIDDEN")
			}
		})
	}
}

func TestRequireRole_TokenWithoutRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	status, body := get(t, guardedApp(entity.RoleAdmin), "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "MISSING_ROLE")
}

func TestAuthMiddleware_RejectsBadHeaders(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secret", testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":    {"", "MISSING_TOKEN"},
		"sin Bearer":    {"Token abc", "INVALID_TOKEN"},
		"malformado":    {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"expirado":      {"Bearer " + expired, "INVALID_TOKEN"},
		"firma de otro": {"Bearer " + foreign, "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := get(t, guardedApp(entity.RoleAdmin), tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Contains(t, body, tc.code)
		})
	}
}

func TestAuthMiddleware_LoadsLocals(t *testing.T) {
	status, body := get(t, guardedApp(entity.RoleWarehouse), tokenForRole(t, entity.RoleWarehouse))
	require.Equal(t, http.StatusOK, status)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, testUserID, out["user_id"])
	assert.Equal(t, entity.RoleWarehouse, out["role"])
}
