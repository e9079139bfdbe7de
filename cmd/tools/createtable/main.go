package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/zjy19901124/rallyroo-rc-store/internal/http/middleware"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/addresses"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/orders"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/products"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/settings"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/users"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&users.User{},
		&products.Product{},
		&orders.Order{},
		&addresses.Address{},
		&settings.SiteSettings{},
		&middleware.AdminSession{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("✓ schema migrated")
}
