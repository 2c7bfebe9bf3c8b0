package database

import (
	"fmt"
	"os"

	"invoice-portal/logger"
	"invoice-portal/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		logger.L.Debug("no .env file, using process environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=disable TimeZone=Asia/Jakarta",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L.WithError(err).Fatal("could not connect to database")
	}
}

func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.Setting{}, &models.IdempotencyKey{}, &models.ShareLink{},
	); err != nil {
		logger.L.WithError(err).Fatal("migration failed")
	}
}
