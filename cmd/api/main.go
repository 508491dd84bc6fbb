package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/vantro-labs/coinledger-backend/internal/account"
	"github.com/vantro-labs/coinledger-backend/internal/audit"
	"github.com/vantro-labs/coinledger-backend/internal/auth"
	"github.com/vantro-labs/coinledger-backend/internal/category"
	"github.com/vantro-labs/coinledger-backend/internal/config"
	"github.com/vantro-labs/coinledger-backend/internal/dashboard"
	apphttp "github.com/vantro-labs/coinledger-backend/internal/http"
	"github.com/vantro-labs/coinledger-backend/internal/item"
	"github.com/vantro-labs/coinledger-backend/internal/reports"
	"github.com/vantro-labs/coinledger-backend/internal/router"
	"github.com/vantro-labs/coinledger-backend/internal/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CorsOrigin))
	app.Use(requestLogger())

	secret := []byte(cfg.JWTSecret)
	auditLog := &audit.Logger{DB: pool}

	r := &router.Router{
		AuthHandler: &apphttp.AuthHandler{
			Store:    apphttp.NewUserRepo(pool),
			Mailer:   apphttp.LogMailer{},
			Secret:   secret,
			TokenTTL: cfg.TokenTTL,
		},
		AccountHandler:     account.NewHandler(account.NewRepo(pool), auditLog),
		CategoryHandler:    category.NewHandler(category.NewRepo(pool), auditLog),
		ItemHandler:        item.NewHandler(item.NewRepo(pool), auditLog),
		TransactionHandler: transaction.NewHandler(transaction.NewRepo(pool), auditLog),
		DashboardHandler:   dashboard.NewHandler(dashboard.NewRepo(pool)),
		ReportsHandler:     reports.NewHandler(reports.NewRepo(pool)),
		AuthMW:             auth.Protect(secret),
		AuthLimit:          router.RateLimitAuth(cfg.RateLimitAuthMax),
		WriteMW:            router.RateLimitWrite(cfg.RateLimitWriteMax),
	}
	r.RegisterRoutes(app)

	log.Println("Listening on port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
