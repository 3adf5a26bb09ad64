package seeders

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pos-api/models"
	"pos-api/utils"
)

// Seed is idempotent: FirstOrCreate keyed on the natural unique column.
func Seed(db *gorm.DB) {
	// ============= Users =============
	users := []models.User{
		{Username: "admin", Password: hash("admin123"), Role: "admin"},
		{Username: "cashier1", Password: hash("cashier123"), Role: "cashier"},
	}
	for _, user := range users {
		db.FirstOrCreate(&user, models.User{Username: user.Username})
	}

	// ============= Products =============
	products := []models.Product{
		{Name: "Espresso Beans 1kg", Category: "Coffee", Description: utils.PtrString("Dark roast arabica"), PriceCents: 1850, StockQuantity: 40},
		{Name: "Whole Milk 1L", Category: "Dairy", PriceCents: 220, StockQuantity: 120},
		{Name: "Butter Croissant", Category: "Bakery", Description: utils.PtrString("Baked daily"), PriceCents: 350, StockQuantity: 60},
		{Name: "Orange Juice 330ml", Category: "Drinks", PriceCents: 400, StockQuantity: 80},
		{Name: "Dark Chocolate Bar", Category: "Snacks", Description: utils.PtrString("70% cocoa"), PriceCents: 650, StockQuantity: 50},
		{Name: "Sparkling Water 500ml", Category: "Drinks", PriceCents: 180, StockQuantity: 150},
		{Name: "Granola Bar", Category: "Snacks", PriceCents: 250, StockQuantity: 90},
		{Name: "Sourdough Loaf", Category: "Bakery", PriceCents: 520, StockQuantity: 25},
	}
	for _, product := range products {
		db.FirstOrCreate(&product, models.Product{Name: product.Name})
	}

	// ============= Customers =============
	customers := []models.Customer{
		{FullName: "Ana Pereira", Contact: "+351910000001", Email: utils.PtrString("ana@example.com")},
		{FullName: "Marko Novak", Contact: "+38640000002"},
		{FullName: "Lucia Romano", Contact: "+39330000003", Email: utils.PtrString("lucia@example.com")},
	}
	for _, customer := range customers {
		db.FirstOrCreate(&customer, models.Customer{FullName: customer.FullName})
	}

	log.Printf("seeding done: %d users, %d products, %d customers", len(users), len(products), len(customers))
}

func hash(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}
	return string(bytes)
}
