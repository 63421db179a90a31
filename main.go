package main

import (
	"canteen_hub/database"
	"canteen_hub/handler"
	"canteen_hub/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // ảnh món ăn tối đa 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	handler.Init()

	handler.StartScheduleReminderScheduler()
	handler.StartCartCleanupScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
