package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-api/models"
)

func TestGetSaleByIDPreservesPriceSnapshots(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Croissant", 350, 20)

	sale, err := env.sales.Checkout(ctx, CheckoutInput{
		Cart:          cartWith(t, models.CartLine{ProductID: product.ID, Quantity: 2}),
		PaymentMethod: models.PaymentCard,
		OperatorID:    1,
	})
	require.NoError(t, err)

	// catalog edits after the sale must not leak into the record
	require.NoError(t, env.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{"price_cents": 9999, "name": "Renamed"}).Error)

	fetched, err := env.queries.GetSaleByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Croissant", fetched.Items[0].ProductName)
	assert.Equal(t, int64(350), fetched.Items[0].UnitPriceCents)
	assert.Equal(t, int64(700), fetched.Items[0].LineTotalCents)
	assert.Equal(t, int64(700), fetched.FinalCents)
}

func TestGetSaleByIDIdempotentRead(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	a := env.seedProduct(t, "A", 100, 10)
	b := env.seedProduct(t, "B", 200, 10)

	sale, err := env.sales.Checkout(ctx, CheckoutInput{
		Cart: cartWith(t,
			models.CartLine{ProductID: a.ID, Quantity: 1},
			models.CartLine{ProductID: b.ID, Quantity: 2},
		),
		PaymentMethod: models.PaymentCard,
		OperatorID:    1,
	})
	require.NoError(t, err)

	first, err := env.queries.GetSaleByID(ctx, sale.ID)
	require.NoError(t, err)
	second, err := env.queries.GetSaleByID(ctx, sale.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// line items come back in insertion order
	require.Len(t, first.Items, 2)
	assert.Equal(t, a.ID, first.Items[0].ProductID)
	assert.Equal(t, b.ID, first.Items[1].ProductID)
}

func TestGetSaleByIDNotFound(t *testing.T) {
	env := setup(t)

	_, err := env.queries.GetSaleByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestGetSaleByReference(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Scone", 275, 5)

	sale, err := env.sales.Checkout(ctx, CheckoutInput{
		Cart:          cartWith(t, models.CartLine{ProductID: product.ID, Quantity: 1}),
		PaymentMethod: models.PaymentCard,
		OperatorID:    1,
	})
	require.NoError(t, err)

	fetched, err := env.queries.GetSaleByReference(ctx, sale.ReferenceNo)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, fetched.ID)

	_, err = env.queries.GetSaleByReference(ctx, "no-such-ref")
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestListSalesOrderingAndFilter(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Bun", 150, 100)

	var ids []uint
	for i := 0; i < 3; i++ {
		sale, err := env.sales.Checkout(ctx, CheckoutInput{
			Cart:          cartWith(t, models.CartLine{ProductID: product.ID, Quantity: 1}),
			PaymentMethod: models.PaymentCard,
			OperatorID:    1,
		})
		require.NoError(t, err)
		ids = append(ids, sale.ID)
		// distinct sale dates so the ordering is deterministic
		require.NoError(t, env.db.Model(&models.Sale{}).
			Where("id = ?", sale.ID).
			Update("sale_date", time.Now().Add(time.Duration(i)*time.Hour)).Error)
	}

	sales, meta, err := env.queries.ListSales(ctx, SaleFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, int64(3), meta.Total)

	// newest first
	assert.Equal(t, ids[2], sales[0].ID)
	assert.Equal(t, ids[0], sales[2].ID)

	// restartable: same query, same page, same result
	again, _, err := env.queries.ListSales(ctx, SaleFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, sales, again)

	// date range excluding everything
	past := time.Now().Add(-48 * time.Hour)
	pastEnd := past.Add(time.Hour)
	none, _, err := env.queries.ListSales(ctx, SaleFilter{From: &past, To: &pastEnd, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListSalesStatusFilter(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	product := env.seedProduct(t, "Pie", 450, 100)

	kept, err := env.sales.Checkout(ctx, CheckoutInput{
		Cart:          cartWith(t, models.CartLine{ProductID: product.ID, Quantity: 1}),
		PaymentMethod: models.PaymentCard,
		OperatorID:    1,
	})
	require.NoError(t, err)

	voided, err := env.sales.Checkout(ctx, CheckoutInput{
		Cart:          cartWith(t, models.CartLine{ProductID: product.ID, Quantity: 1}),
		PaymentMethod: models.PaymentCard,
		OperatorID:    1,
	})
	require.NoError(t, err)
	_, err = env.sales.VoidSale(ctx, voided.ID, 1, "")
	require.NoError(t, err)

	completed, _, err := env.queries.ListSales(ctx, SaleFilter{Status: models.SaleCompleted, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, kept.ID, completed[0].ID)
}
