package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/melodybeans/coffeestore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, "root", "root@x.com", "admin-pass", true)
	adminToken := loginUser(t, r, "root", "admin-pass")

	created := createProduct(t, r, adminToken, "Latte", 4.5)
	assert.Equal(t, "Latte", created.Name)
	assert.Equal(t, 4.5, created.Price)
	assert.True(t, created.IsAvailable)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var fetched types.ProductResponse
	decodeJSON(t, w, &fetched)
	assert.Equal(t, created, fetched)

	w = doJSON(t, r, http.MethodGet, "/api/products/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []types.ProductResponse
	decodeJSON(t, w, &list)
	assert.Len(t, list, 1)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), gin.H{
		"price": 5.0,
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated types.ProductResponse
	decodeJSON(t, w, &updated)
	assert.Equal(t, 5.0, updated.Price)
	assert.Equal(t, "Latte", updated.Name)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil, adminToken)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductWritesAreAdminGated(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, "alice", "a@x.com", "latte-art", false)
	userToken := loginUser(t, r, "alice", "latte-art")

	body := gin.H{"name": "Mocha", "price": 5.5}

	w := doJSON(t, r, http.MethodPost, "/api/products/", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/products/", body, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/products/1", body, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/products/1", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, "root", "root@x.com", "admin-pass", true)
	adminToken := loginUser(t, r, "root", "admin-pass")

	createProduct(t, r, adminToken, "Latte", 4.5)

	w := doJSON(t, r, http.MethodPost, "/api/products/", gin.H{
		"name":  "Latte",
		"price": 9.9,
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product name already exists")
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	r := setupRouter(t)

	registerUser(t, r, "root", "root@x.com", "admin-pass", true)
	adminToken := loginUser(t, r, "root", "admin-pass")

	for _, price := range []float64{0, -1.5} {
		w := doJSON(t, r, http.MethodPost, "/api/products/", gin.H{
			"name":  "Broken",
			"price": price,
		}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "price %v", price)
	}
}
