package routes

import (
	"github.com/gin-gonic/gin"

	"pos-api/controllers"
	"pos-api/middlewares"
)

type Controllers struct {
	Auth         *controllers.AuthController
	Products     *controllers.ProductController
	Customers    *controllers.CustomerController
	Sales        *controllers.SaleController
	Dashboard    *controllers.DashboardController
	Audit        *controllers.AuditController
	CashSessions *controllers.CashSessionController
}

func RegisterRoutes(r *gin.Engine, ctl Controllers) {

	r.POST("/login", ctl.Auth.Login)

	// Products
	products := r.Group("/products")
	products.Use(middlewares.AuthMiddleware())
	{
		products.GET("/", ctl.Products.GetProducts)
		products.GET("/low-stock", ctl.Products.GetLowStock)
		products.GET("/export", ctl.Products.ExportProducts)
		products.GET("/:id", ctl.Products.GetProductByID)
		products.POST("/", middlewares.RoleMiddleware("admin", "cashier"), ctl.Products.CreateProduct)
		products.PUT("/:id", middlewares.RoleMiddleware("admin", "cashier"), ctl.Products.UpdateProduct)
		products.POST("/:id/restock", middlewares.RoleMiddleware("admin", "cashier"), ctl.Products.RestockProduct)
		products.DELETE("/:id", middlewares.RoleMiddleware("admin"), ctl.Products.DeleteProduct)
	}

	// Customers
	customers := r.Group("/customers")
	customers.Use(middlewares.AuthMiddleware())
	{
		customers.GET("/", ctl.Customers.GetCustomers)
		customers.GET("/loyalty-total", ctl.Customers.GetTotalLoyaltyPoints)
		customers.GET("/:id", ctl.Customers.GetCustomerByID)
		customers.POST("/", ctl.Customers.CreateCustomer)
		customers.PUT("/:id", ctl.Customers.UpdateCustomer)
		customers.DELETE("/:id", middlewares.RoleMiddleware("admin"), ctl.Customers.DeleteCustomer)
	}

	// Sales
	sales := r.Group("/sales")
	sales.Use(middlewares.AuthMiddleware())
	{
		sales.POST("/", ctl.Sales.Checkout)
		sales.GET("/", ctl.Sales.ListSales)
		sales.GET("/:id", ctl.Sales.GetSale)
		sales.GET("/reference/:ref", ctl.Sales.GetSaleByReference)
		sales.POST("/:id/void", middlewares.RoleMiddleware("admin"), ctl.Sales.VoidSale)
	}

	// Dashboard
	dashboard := r.Group("/dashboard")
	dashboard.Use(middlewares.AuthMiddleware())
	{
		dashboard.GET("/", ctl.Dashboard.GetDashboard)
	}

	// Audit logs (admin only)
	audit := r.Group("/audit-logs")
	audit.Use(middlewares.AuthMiddleware(), middlewares.RoleMiddleware("admin"))
	{
		audit.GET("/", ctl.Audit.GetAuditLogs)
	}

	// Cash sessions
	cash := r.Group("/cash-sessions")
	cash.Use(middlewares.AuthMiddleware())
	{
		cash.POST("/", ctl.CashSessions.OpenCashSession)
		cash.GET("/current", ctl.CashSessions.GetCurrentCashSession)
		cash.POST("/close", ctl.CashSessions.CloseCashSession)
	}
}
