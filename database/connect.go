package database

import (
	"canteen_hub/config"
	"canteen_hub/model"
	"fmt"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	DB.AutoMigrate(
		&model.Account{},
		&model.Customer{},
		&model.Stall{},
		&model.MenuItem{},
		&model.MenuAddOn{},
		&model.CartLine{},
		&model.CartLineAddOn{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderItemAddOn{},
		&model.CancellationRequest{},
		&model.Penalty{},
		&model.Notification{},
	)
	fmt.Println("Database Migrated")

	// khởi tạo dữ liệu
	SeedData(DB)
}
