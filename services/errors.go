package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart                = errors.New("cart is empty")
	ErrInvalidDiscount          = errors.New("discount must not be negative")
	ErrDiscountExceedsSubtotal  = errors.New("discount exceeds subtotal")
	ErrInvalidPaymentMethod     = errors.New("unknown payment method")
	ErrInvalidState             = errors.New("invalid sale state for this operation")
	ErrProductInUse             = errors.New("product is referenced by recorded sales")
	ErrDuplicateName            = errors.New("an item with this name already exists")
	ErrCashSessionOpen          = errors.New("a cash session is already open")
	ErrNoCashSession            = errors.New("no open cash session")
	ErrInvalidRestockQuantity   = errors.New("restock quantity must be positive")
	ErrInvalidLoyaltyAdjustment = errors.New("loyalty adjustment must not be negative")
)

type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type CustomerNotFoundError struct {
	CustomerID uint
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer %d not found", e.CustomerID)
}

// InsufficientStockError reports the stock level observed when the
// conditional decrement failed, so the caller can adjust the cart.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

type InsufficientTenderError struct {
	RequiredCents int64
	TenderedCents int64
}

func (e *InsufficientTenderError) Error() string {
	return fmt.Sprintf("cash tendered %d is below the amount due %d",
		e.TenderedCents, e.RequiredCents)
}

// PersistenceError wraps storage failures. The unit of work guarantees no
// partial state survives, so callers may retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
