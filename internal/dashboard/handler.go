package dashboard

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/auth"
)

type Store interface {
	SumWindow(ctx context.Context, userID string, w Window) (Stats, error)
	MonthWise(ctx context.Context, userID string) ([]MonthStats, error)
}

type Handler struct {
	Store Store

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ctx := userContext(c)
	now := h.Now()

	var out Overview
	var err error
	if out.Daily, err = h.Store.SumWindow(ctx, userID, Daily(now)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate daily stats: "+err.Error())
	}
	if out.Weekly, err = h.Store.SumWindow(ctx, userID, Weekly(now)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate weekly stats: "+err.Error())
	}
	if out.Monthly, err = h.Store.SumWindow(ctx, userID, Monthly(now)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate monthly stats: "+err.Error())
	}
	if out.MonthWise, err = h.Store.MonthWise(ctx, userID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to aggregate monthly series: "+err.Error())
	}

	return c.JSON(out)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
