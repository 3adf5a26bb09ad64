package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pos-api/config"
	"pos-api/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// every pooled connection gets its own :memory: database, so keep the
	// pool at a single connection for the whole test
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

type testEnv struct {
	db        *gorm.DB
	sales     *SaleService
	queries   *SaleQueryService
	products  *ProductService
	customers *CustomerService
	audit     *AuditService
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db := setupDB(t)
	audit := NewAuditService(db)
	customers := NewCustomerService(db)
	return &testEnv{
		db:        db,
		sales:     NewSaleService(db, audit, customers),
		queries:   NewSaleQueryService(db),
		products:  NewProductService(db, audit),
		customers: customers,
		audit:     audit,
	}
}

func (e *testEnv) seedProduct(t *testing.T, name string, priceCents int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "test", PriceCents: priceCents, StockQuantity: stock}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) seedCustomer(t *testing.T, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{FullName: name, Contact: "000"}
	require.NoError(t, e.db.Create(customer).Error)
	return customer
}

func (e *testEnv) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, e.db.First(&product, productID).Error)
	return product.StockQuantity
}

func cartWith(t *testing.T, entries ...models.CartLine) *models.Cart {
	t.Helper()
	cart := models.NewCart()
	for _, entry := range entries {
		require.NoError(t, cart.Add(entry.ProductID, entry.Quantity))
	}
	return cart
}
