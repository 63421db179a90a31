package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config đọc biến môi trường từ file .env
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Không tìm thấy file .env, dùng biến môi trường hệ thống")
	}
	return os.Getenv(key)
}
