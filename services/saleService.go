package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pos-api/models"
)

// SaleService turns a cart into a durable sale. All storage writes of a
// checkout run inside one transaction; the audit entry and the loyalty
// update happen after commit and are best-effort.
type SaleService struct {
	db        *gorm.DB
	audit     *AuditService
	customers *CustomerService
}

func NewSaleService(db *gorm.DB, audit *AuditService, customers *CustomerService) *SaleService {
	return &SaleService{db: db, audit: audit, customers: customers}
}

type CheckoutInput struct {
	Cart          *models.Cart
	CustomerID    *uint
	PaymentMethod models.PaymentMethod
	// CashTenderedCents is required for cash payments and must cover the
	// final amount. It is ignored for other payment methods.
	CashTenderedCents *int64
	DiscountCents     int64
	// LineDiscounts maps product id to a per-line discount in cents.
	LineDiscounts map[uint]int64
	OperatorID    uint
	IPAddress     string
	Notes         *string
}

// Checkout validates the cart, snapshots prices, and commits the sale,
// the line items and the stock decrements as one unit of work. The stock
// read during the snapshot is advisory only: the authoritative check is the
// conditional decrement at commit time, which is what keeps concurrent
// terminals from overselling the same product.
func (s *SaleService) Checkout(ctx context.Context, in CheckoutInput) (*models.Sale, error) {
	if in.Cart == nil || in.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if in.DiscountCents < 0 {
		return nil, ErrInvalidDiscount
	}
	if !in.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	for productID, d := range in.LineDiscounts {
		if d < 0 {
			return nil, fmt.Errorf("%w: line discount for product %d", ErrInvalidDiscount, productID)
		}
	}

	db := s.db.WithContext(ctx)

	if in.CustomerID != nil {
		var customer models.Customer
		if err := db.First(&customer, *in.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &CustomerNotFoundError{CustomerID: *in.CustomerID}
			}
			return nil, &PersistenceError{Op: "read customer", Err: err}
		}
	}

	// Snapshot phase: capture name and unit price per line and compute the
	// totals. Line discounts are clamped to the line gross so a line total
	// never goes negative.
	lines := in.Cart.Lines()
	items := make([]models.SaleLineItem, 0, len(lines))
	var subtotal int64
	for _, line := range lines {
		var product models.Product
		if err := db.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ProductNotFoundError{ProductID: line.ProductID}
			}
			return nil, &PersistenceError{Op: "read product", Err: err}
		}

		gross := product.PriceCents * int64(line.Quantity)
		lineDiscount := in.LineDiscounts[line.ProductID]
		if lineDiscount > gross {
			lineDiscount = gross
		}
		lineTotal := gross - lineDiscount
		subtotal += lineTotal

		items = append(items, models.SaleLineItem{
			ProductID:         product.ID,
			ProductName:       product.Name,
			UnitPriceCents:    product.PriceCents,
			Quantity:          line.Quantity,
			LineDiscountCents: lineDiscount,
			LineTotalCents:    lineTotal,
		})
	}

	// Over-discount is rejected rather than clamped: a discount larger than
	// the subtotal is almost always an input mistake at the register.
	if in.DiscountCents > subtotal {
		return nil, ErrDiscountExceedsSubtotal
	}
	final := subtotal - in.DiscountCents
	if final < 0 {
		final = 0
	}

	var cashReceived, changeGiven *int64
	if in.PaymentMethod == models.PaymentCash {
		if in.CashTenderedCents == nil || *in.CashTenderedCents < final {
			tendered := int64(0)
			if in.CashTenderedCents != nil {
				tendered = *in.CashTenderedCents
			}
			return nil, &InsufficientTenderError{RequiredCents: final, TenderedCents: tendered}
		}
		change := *in.CashTenderedCents - final
		cashReceived = in.CashTenderedCents
		changeGiven = &change
	}

	sale := &models.Sale{
		ReferenceNo:       uuid.NewString(),
		CustomerID:        in.CustomerID,
		SaleDate:          time.Now(),
		SubtotalCents:     subtotal,
		DiscountCents:     in.DiscountCents,
		FinalCents:        final,
		PaymentMethod:     in.PaymentMethod,
		Status:            models.SaleCompleted,
		CashReceivedCents: cashReceived,
		ChangeGivenCents:  changeGiven,
		CreatedBy:         in.OperatorID,
		Notes:             in.Notes,
		Items:             items,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := conditionalDecrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return tx.Create(sale).Error
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, stockErr
		}
		return nil, &PersistenceError{Op: "commit sale", Err: err}
	}

	// The sale is durable from here on; side effects must not fail it.
	s.audit.AppendBestEffort(AuditEntry{
		EntityType:  "sale",
		EntityID:    sale.ID,
		Action:      "create",
		UserID:      &in.OperatorID,
		NewValue:    sale,
		IPAddress:   in.IPAddress,
		Description: fmt.Sprintf("Sale %s completed, total %d cents", sale.ReferenceNo, sale.FinalCents),
	})
	s.awardLoyaltyPoints(ctx, sale)

	return sale, nil
}

// conditionalDecrementStock only succeeds when enough stock exists at write
// time. A zero row count means another checkout consumed the stock since the
// snapshot; the caller aborts the whole transaction.
func conditionalDecrementStock(tx *gorm.DB, productID uint, qty int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var available int
		if err := tx.Model(&models.Product{}).
			Select("stock_quantity").
			Where("id = ?", productID).
			Scan(&available).Error; err != nil {
			return err
		}
		return &InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
	}
	return nil
}

// One loyalty point per whole 10.00 of the final amount.
func loyaltyPointsFor(finalCents int64) int {
	return int(finalCents / 1000)
}

func (s *SaleService) awardLoyaltyPoints(ctx context.Context, sale *models.Sale) {
	if sale.CustomerID == nil {
		return
	}
	points := loyaltyPointsFor(sale.FinalCents)
	if points == 0 {
		return
	}
	if err := s.customers.IncrementLoyaltyPoints(ctx, *sale.CustomerID, points); err != nil {
		log.Printf("loyalty update failed for customer %d on sale %d: %v",
			*sale.CustomerID, sale.ID, err)
	}
}

// VoidSale reverses a completed sale: stock is restored and the status flips
// to voided inside one transaction. Monetary fields stay untouched so the
// record still shows what was charged.
func (s *SaleService) VoidSale(ctx context.Context, saleID uint, operatorID uint, ip string) (*models.Sale, error) {
	db := s.db.WithContext(ctx)

	var sale models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&sale, saleID).Error; err != nil {
			return err
		}
		// flip the status conditionally, same shape as the checkout
		// decrement: only the void that wins this write restores stock,
		// anyone else sees zero rows and backs off
		res := tx.Model(&models.Sale{}).
			Where("id = ? AND status = ?", saleID, models.SaleCompleted).
			Update("status", models.SaleVoided)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}
		for _, item := range sale.Items {
			incr := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity))
			if incr.Error != nil {
				return incr.Error
			}
		}
		sale.Status = models.SaleVoided
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrInvalidState) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "void sale", Err: err}
	}

	s.audit.AppendBestEffort(AuditEntry{
		EntityType:  "sale",
		EntityID:    sale.ID,
		Action:      "void",
		UserID:      &operatorID,
		IPAddress:   ip,
		Description: fmt.Sprintf("Sale %s voided, stock restored", sale.ReferenceNo),
	})

	return &sale, nil
}
