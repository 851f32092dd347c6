package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/melodybeans/coffeestore/db"
	"github.com/melodybeans/coffeestore/internal/auth"
	"github.com/melodybeans/coffeestore/internal/router"
	"github.com/melodybeans/coffeestore/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupRouter wires the full router against a fresh SQLite database so the
// tests exercise the same paths production requests take.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("SECRET_KEY", "handler-test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "coffeestore.db")), &gorm.Config{})
	require.NoError(t, err)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())

	return router.NewRouter()
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerUser(t *testing.T, r http.Handler, username, email, password string, admin bool) types.UserResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
		"is_admin": admin,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.UserResponse
	decodeJSON(t, w, &resp)
	return resp
}

func loginUser(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.TokenResponse
	decodeJSON(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func createProduct(t *testing.T, r http.Handler, token, name string, price float64) types.ProductResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/products/", gin.H{
		"name":        name,
		"description": "test product",
		"price":       price,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.ProductResponse
	decodeJSON(t, w, &resp)
	return resp
}
