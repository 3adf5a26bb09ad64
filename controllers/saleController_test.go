package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pos-api/config"
	"pos-api/models"
	"pos-api/services"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	audit := services.NewAuditService(db)
	customers := services.NewCustomerService(db)
	sales := services.NewSaleService(db, audit, customers)
	queries := services.NewSaleQueryService(db)
	ctl := NewSaleController(sales, queries)

	r := gin.New()
	// stand-in for the auth middleware
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("role", "cashier")
	})
	r.POST("/sales", ctl.Checkout)
	r.GET("/sales/:id", ctl.GetSale)
	r.GET("/sales", ctl.ListSales)
	r.POST("/sales/:id/void", ctl.VoidSale)

	return r, db
}

func seedProductRow(t *testing.T, db *gorm.DB, name string, priceCents int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "test", PriceCents: priceCents, StockQuantity: stock}
	require.NoError(t, db.Create(product).Error)
	return product
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutEndpoint(t *testing.T) {
	r, db := setupRouter(t)
	product := seedProductRow(t, db, "Coffee", 1000, 5)

	w := postJSON(t, r, "/sales", gin.H{
		"payment_method":      "cash",
		"cash_tendered_cents": 2500,
		"items": []gin.H{
			{"product_id": product.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sale models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.Equal(t, int64(2000), sale.FinalCents)
	require.NotNil(t, sale.ChangeGivenCents)
	assert.Equal(t, int64(500), *sale.ChangeGivenCents)
	assert.Equal(t, uint(1), sale.CreatedBy)
}

func TestCheckoutEndpointStatusMapping(t *testing.T) {
	r, db := setupRouter(t)
	product := seedProductRow(t, db, "Loaf", 520, 1)

	// contention -> 409
	w := postJSON(t, r, "/sales", gin.H{
		"payment_method": "card",
		"items":          []gin.H{{"product_id": product.ID, "quantity": 5}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// unknown product -> 404
	w = postJSON(t, r, "/sales", gin.H{
		"payment_method": "card",
		"items":          []gin.H{{"product_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// empty cart -> 400
	w = postJSON(t, r, "/sales", gin.H{
		"payment_method": "card",
		"items":          []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// short cash tender -> 400
	w = postJSON(t, r, "/sales", gin.H{
		"payment_method":      "cash",
		"cash_tendered_cents": 100,
		"items":               []gin.H{{"product_id": product.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// nothing committed by any of the failures
	var count int64
	db.Model(&models.Sale{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetAndVoidSaleEndpoints(t *testing.T) {
	r, db := setupRouter(t)
	product := seedProductRow(t, db, "Juice", 400, 10)

	w := postJSON(t, r, "/sales", gin.H{
		"payment_method": "card",
		"items":          []gin.H{{"product_id": product.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var sale models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/sales/%d", sale.ID), nil)
	get := httptest.NewRecorder()
	r.ServeHTTP(get, req)
	require.Equal(t, http.StatusOK, get.Code)

	var fetched models.Sale
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &fetched))
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, int64(1200), fetched.FinalCents)

	void := postJSON(t, r, fmt.Sprintf("/sales/%d/void", sale.ID), gin.H{})
	require.Equal(t, http.StatusOK, void.Code)

	// voiding again is rejected
	again := postJSON(t, r, fmt.Sprintf("/sales/%d/void", sale.ID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, again.Code)

	// unknown sale
	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/sales/424242", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
