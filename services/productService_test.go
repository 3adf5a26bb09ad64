package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-api/models"
)

func TestProductCreateAndDuplicateName(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	product := &models.Product{Name: "Espresso", Category: "Coffee", PriceCents: 1850, StockQuantity: 10}
	require.NoError(t, env.products.Create(ctx, product, nil, ""))
	assert.NotZero(t, product.ID)

	dup := &models.Product{Name: "Espresso", Category: "Coffee", PriceCents: 2000}
	assert.ErrorIs(t, env.products.Create(ctx, dup, nil, ""), ErrDuplicateName)

	// create is audit logged in the same transaction
	var entry models.AuditLog
	require.NoError(t, env.db.Where("entity_type = ? AND action = ?", "product", "create").First(&entry).Error)
	assert.Equal(t, product.ID, entry.EntityID)
}

func TestProductRestock(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Milk", 220, 3)

	updated, err := env.products.Restock(ctx, product.ID, 7, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 10, updated.StockQuantity)

	_, err = env.products.Restock(ctx, product.ID, 0, nil, "")
	assert.ErrorIs(t, err, ErrInvalidRestockQuantity)
	_, err = env.products.Restock(ctx, product.ID, -2, nil, "")
	assert.ErrorIs(t, err, ErrInvalidRestockQuantity)
}

func TestProductDeleteRejectedWhileReferenced(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Cake", 800, 5)

	_, err := env.sales.Checkout(ctx, CheckoutInput{
		Cart:          cartWith(t, models.CartLine{ProductID: product.ID, Quantity: 1}),
		PaymentMethod: models.PaymentCard,
		OperatorID:    1,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, env.products.Delete(ctx, product.ID, nil, ""), ErrProductInUse)

	// still present
	_, err = env.products.GetByID(ctx, product.ID)
	require.NoError(t, err)

	// unreferenced products delete fine
	free := env.seedProduct(t, "Unsold", 100, 1)
	require.NoError(t, env.products.Delete(ctx, free.ID, nil, ""))
	_, err = env.products.GetByID(ctx, free.ID)
	var notFound *ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestProductSearchAndLowStock(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	env.seedProduct(t, "Dark Chocolate", 650, 2)
	env.seedProduct(t, "Milk Chocolate", 600, 50)
	env.seedProduct(t, "Granola", 250, 1)

	found, err := env.products.Search(ctx, "chocolate")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = env.products.Search(ctx, "dark chocolate")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dark Chocolate", found[0].Name)

	low, err := env.products.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 2)
	// sorted by stock ascending
	assert.Equal(t, "Granola", low[0].Name)
}

func TestProductUpdate(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Old Name", 100, 5)

	updated, err := env.products.Update(ctx, product.ID, models.Product{
		Name: "New Name", Category: "test", PriceCents: 150, StockQuantity: 5,
	}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, int64(150), updated.PriceCents)

	other := env.seedProduct(t, "Taken", 100, 5)
	_, err = env.products.Update(ctx, product.ID, models.Product{
		Name: other.Name, Category: "test", PriceCents: 150, StockQuantity: 5,
	}, nil, "")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestProductUpdateDoesNotOverwriteStock(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Beans", 1000, 5)

	// an edit form loaded before any of today's sales
	stale := *product

	_, err := env.sales.Checkout(ctx, CheckoutInput{
		Cart:          cartWith(t, models.CartLine{ProductID: product.ID, Quantity: 2}),
		PaymentMethod: models.PaymentCard,
		OperatorID:    1,
	})
	require.NoError(t, err)
	require.Equal(t, 3, env.stockOf(t, product.ID))

	stale.Name = "Roasted Beans"
	stale.PriceCents = 1200
	updated, err := env.products.Update(ctx, product.ID, stale, nil, "")
	require.NoError(t, err)

	assert.Equal(t, "Roasted Beans", updated.Name)
	assert.Equal(t, int64(1200), updated.PriceCents)
	// stock moved through checkout, not through the edit
	assert.Equal(t, 3, updated.StockQuantity)
	assert.Equal(t, 3, env.stockOf(t, product.ID))
}
