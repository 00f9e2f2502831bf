package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/grishdev/slotbot/internal/app"
	"github.com/grishdev/slotbot/internal/config"
	"github.com/grishdev/slotbot/internal/controller"
	"github.com/grishdev/slotbot/internal/repository"
	"github.com/grishdev/slotbot/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting slot bot",
		zap.String("environment", cfg.Environment),
		zap.Int64("admin_id", cfg.AdminID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Подключение к базе
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("✅ Connected to database")

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Репозитории
	slotRepo := repository.NewSlotRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// Сервисы
	userService := service.NewUserService(userRepo, logger)
	bookingService := service.NewBookingService(slotRepo, userRepo, cfg.AdminID, logger)
	scheduleService := service.NewScheduleService(slotRepo, userRepo, cfg.AdminID, logger)

	// Telegram бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		userService,
		bookingService,
		scheduleService,
		cfg.AdminID,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Info("🤖 Bot is running, press Ctrl+C to stop")
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down gracefully")
}
