package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pos-api/config"
	"pos-api/controllers"
	"pos-api/routes"
	"pos-api/seeders"
	"pos-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	db, err := config.Connect()
	if err != nil {
		log.Fatal(err)
	}

	// services get the handle by injection; no package-global connection
	audit := services.NewAuditService(db)
	customerService := services.NewCustomerService(db)
	productService := services.NewProductService(db, audit)
	saleService := services.NewSaleService(db, audit, customerService)
	saleQueries := services.NewSaleQueryService(db)
	authService := services.NewAuthService(db)
	cashSessions := services.NewCashSessionService(db)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Products:     controllers.NewProductController(productService),
		Customers:    controllers.NewCustomerController(customerService),
		Sales:        controllers.NewSaleController(saleService, saleQueries),
		Dashboard:    controllers.NewDashboardController(db),
		Audit:        controllers.NewAuditController(audit),
		CashSessions: controllers.NewCashSessionController(cashSessions),
	})

	if os.Getenv("SEED") == "true" {
		seeders.Seed(db)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
