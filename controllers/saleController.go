package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pos-api/models"
	"pos-api/services"
	"pos-api/utils"
)

type SaleController struct {
	sales   *services.SaleService
	queries *services.SaleQueryService
}

func NewSaleController(sales *services.SaleService, queries *services.SaleQueryService) *SaleController {
	return &SaleController{sales: sales, queries: queries}
}

type checkoutItemInput struct {
	ProductID         uint  `json:"product_id" binding:"required"`
	Quantity          int   `json:"quantity" binding:"required"`
	LineDiscountCents int64 `json:"line_discount_cents"`
}

type checkoutInput struct {
	CustomerID        *uint               `json:"customer_id,omitempty"`
	PaymentMethod     string              `json:"payment_method" binding:"required"`
	CashTenderedCents *int64              `json:"cash_tendered_cents,omitempty"`
	DiscountCents     int64               `json:"discount_cents"`
	Notes             *string             `json:"notes,omitempty"`
	Items             []checkoutItemInput `json:"items"`
}

func (ctl *SaleController) Checkout(c *gin.Context) {
	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart := models.NewCart()
	lineDiscounts := make(map[uint]int64)
	for _, item := range input.Items {
		if err := cart.Add(item.ProductID, item.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if item.LineDiscountCents != 0 {
			lineDiscounts[item.ProductID] += item.LineDiscountCents
		}
	}

	operator := utils.GetUserID(c)
	var operatorID uint
	if operator != nil {
		operatorID = *operator
	}

	sale, err := ctl.sales.Checkout(c.Request.Context(), services.CheckoutInput{
		Cart:              cart,
		CustomerID:        input.CustomerID,
		PaymentMethod:     models.PaymentMethod(input.PaymentMethod),
		CashTenderedCents: input.CashTenderedCents,
		DiscountCents:     input.DiscountCents,
		LineDiscounts:     lineDiscounts,
		OperatorID:        operatorID,
		IPAddress:         c.ClientIP(),
		Notes:             input.Notes,
	})
	if err != nil {
		c.JSON(checkoutStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func checkoutStatus(err error) int {
	var stockErr *services.InsufficientStockError
	var notFound *services.ProductNotFoundError
	var custNotFound *services.CustomerNotFoundError
	var persistence *services.PersistenceError

	switch {
	case errors.As(err, &stockErr):
		return http.StatusConflict
	case errors.As(err, &notFound), errors.As(err, &custNotFound):
		return http.StatusNotFound
	case errors.As(err, &persistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (ctl *SaleController) GetSale(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale id"})
		return
	}

	sale, err := ctl.queries.GetSaleByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// GetSaleByReference resolves the receipt reference number printed on the
// customer's copy.
func (ctl *SaleController) GetSaleByReference(c *gin.Context) {
	sale, err := ctl.queries.GetSaleByReference(c.Request.Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (ctl *SaleController) ListSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	filter := services.SaleFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   models.SaleStatus(c.Query("status")),
	}

	// single-day filter: ?date=2006-01-02
	if date := c.Query("date"); date != "" {
		start, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		end := start.Add(24 * time.Hour)
		filter.From = &start
		filter.To = &end
	} else {
		if from := c.Query("from"); from != "" {
			start, err := time.Parse("2006-01-02", from)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
				return
			}
			filter.From = &start
		}
		if to := c.Query("to"); to != "" {
			end, err := time.Parse("2006-01-02", to)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
				return
			}
			end = end.Add(24 * time.Hour)
			filter.To = &end
		}
	}

	sales, meta, err := ctl.queries.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sales, "meta": meta})
}

func (ctl *SaleController) VoidSale(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sale id"})
		return
	}

	operator := utils.GetUserID(c)
	var operatorID uint
	if operator != nil {
		operatorID = *operator
	}

	sale, voidErr := ctl.sales.VoidSale(c.Request.Context(), uint(id), operatorID, c.ClientIP())
	if voidErr != nil {
		switch {
		case errors.Is(voidErr, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		case errors.Is(voidErr, services.ErrInvalidState):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only completed sales can be voided"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": voidErr.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, sale)
}
