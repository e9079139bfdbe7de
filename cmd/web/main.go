package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/zjy19901124/rallyroo-rc-store/internal/config"
	apphttp "github.com/zjy19901124/rallyroo-rc-store/internal/http"
	"github.com/zjy19901124/rallyroo-rc-store/internal/modules/payments"
	"github.com/zjy19901124/rallyroo-rc-store/internal/storage"
)

func main() {
	// Load .env if present; prod uses real env vars.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.FromEnv()
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	// TranslateError maps driver duplicate-key errors onto gorm sentinels,
	// which webhook idempotency relies on.
	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	st, err := storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}
	logger.Info("storage ready", "driver", st.Driver)

	stripeClient := payments.NewStripeClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:  logger,
		DB:      db,
		Cfg:     cfg,
		Stripe:  stripeClient,
		Storage: st.Storage,
	})

	logger.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
