package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/account"
	"github.com/vantro-labs/coinledger-backend/internal/category"
	"github.com/vantro-labs/coinledger-backend/internal/dashboard"
	handlers "github.com/vantro-labs/coinledger-backend/internal/http"
	"github.com/vantro-labs/coinledger-backend/internal/item"
	"github.com/vantro-labs/coinledger-backend/internal/reports"
	"github.com/vantro-labs/coinledger-backend/internal/transaction"
)

type Router struct {
	AuthHandler        *handlers.AuthHandler
	AccountHandler     *account.Handler
	CategoryHandler    *category.Handler
	ItemHandler        *item.Handler
	TransactionHandler *transaction.Handler
	DashboardHandler   *dashboard.Handler
	ReportsHandler     *reports.Handler

	AuthMW    fiber.Handler
	AuthLimit fiber.Handler
	WriteMW   fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health-check", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	if r.AuthHandler != nil {
		auth := app.Group("/api/auth")
		if r.AuthLimit != nil {
			auth.Use(r.AuthLimit)
		}
		auth.Post("/register", r.AuthHandler.Register)
		auth.Post("/login", r.AuthHandler.Login)
		auth.Post("/forgot-password", r.AuthHandler.ForgotPassword)
		auth.Post("/reset-password", r.AuthHandler.ResetPassword)
		app.Get("/api/auth/me", r.AuthMW, r.AuthHandler.Me)
	}

	if r.AccountHandler != nil {
		g := app.Group("/api/accounts", r.AuthMW, ValidateID())
		g.Get("/", r.AccountHandler.List)
		g.Post("/", r.writeMW(), r.AccountHandler.Create)
		g.Put("/:id", r.writeMW(), r.AccountHandler.Update)
		g.Delete("/:id", r.writeMW(), r.AccountHandler.Delete)
		g.Post("/:id/mark-report-sent", r.writeMW(), r.AccountHandler.MarkReportSent)
	}

	if r.CategoryHandler != nil {
		g := app.Group("/api/categories", r.AuthMW, ValidateID())
		g.Get("/", r.CategoryHandler.List)
		g.Post("/", r.writeMW(), r.CategoryHandler.Create)
		g.Put("/:id", r.writeMW(), r.CategoryHandler.Update)
		g.Delete("/:id", r.writeMW(), r.CategoryHandler.Delete)
	}

	if r.ItemHandler != nil {
		g := app.Group("/api/items", r.AuthMW, ValidateID())
		g.Get("/", r.ItemHandler.List)
		g.Post("/", r.writeMW(), r.ItemHandler.Create)
		g.Put("/:id", r.writeMW(), r.ItemHandler.Update)
		g.Delete("/:id", r.writeMW(), r.ItemHandler.Delete)
	}

	if r.TransactionHandler != nil {
		g := app.Group("/api/transactions", r.AuthMW, ValidateID())
		g.Get("/", r.TransactionHandler.List)
		g.Post("/", r.writeMW(), r.TransactionHandler.Create)
		g.Put("/:id", r.writeMW(), r.TransactionHandler.Update)
		g.Delete("/:id", r.writeMW(), r.TransactionHandler.Delete)
	}

	if r.DashboardHandler != nil {
		app.Get("/api/dashboard/stats", r.AuthMW, r.DashboardHandler.Stats)
	}

	if r.ReportsHandler != nil {
		app.Get("/api/reports/statement", r.AuthMW, r.ReportsHandler.StatementPDF)
		app.Get("/api/reports/export", r.AuthMW, r.ReportsHandler.ExportXLSX)
	}
}

// writeMW returns the write rate limiter, or a pass-through when none is set.
func (r *Router) writeMW() fiber.Handler {
	if r.WriteMW != nil {
		return r.WriteMW
	}
	return func(c *fiber.Ctx) error { return c.Next() }
}
