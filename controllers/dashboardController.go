package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pos-api/models"
)

type DashboardController struct {
	db *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

type TopProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

func (ctl *DashboardController) GetDashboard(c *gin.Context) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var todayRevenue int64
	ctl.db.Model(&models.Sale{}).
		Select("COALESCE(SUM(final_cents), 0)").
		Where("status = ? AND sale_date >= ?", models.SaleCompleted, startOfDay).
		Scan(&todayRevenue)

	var todaySales int64
	ctl.db.Model(&models.Sale{}).
		Where("status = ? AND sale_date >= ?", models.SaleCompleted, startOfDay).
		Count(&todaySales)

	var lowStock int64
	ctl.db.Model(&models.Product{}).Where("stock_quantity < ?", 5).Count(&lowStock)

	// Top selling products (top 5) across completed sales
	var topProducts []TopProduct
	ctl.db.Model(&models.SaleLineItem{}).
		Select("product_id, SUM(quantity) as quantity").
		Joins("JOIN sales ON sales.id = sale_line_items.sale_id").
		Where("sales.status = ?", models.SaleCompleted).
		Group("product_id").
		Order("quantity desc").
		Limit(5).
		Scan(&topProducts)

	for i, tp := range topProducts {
		var product models.Product
		if err := ctl.db.First(&product, tp.ProductID).Error; err == nil {
			topProducts[i].Name = product.Name
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"today_revenue_cents": todayRevenue,
		"today_sales":         todaySales,
		"low_stock":           lowStock,
		"top_selling":         topProducts,
	})
}
