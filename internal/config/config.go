package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	DBDSN          string
	AdminID        int64 // telegram id единственного администратора
	Environment    string
	MigrationsPath string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	// ADMIN_ID задаёт единственного владельца расписания. Бизнес-логика
	// получает его через конструкторы, а не читает из окружения сама.
	adminRaw := os.Getenv("ADMIN_ID")
	if adminRaw == "" {
		return nil, fmt.Errorf("ADMIN_ID is required but not set")
	}
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID must be a telegram id: %w", err)
	}
	cfg.AdminID = adminID

	return cfg, nil
}
