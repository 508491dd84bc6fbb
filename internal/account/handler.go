package account

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/audit"
	"github.com/vantro-labs/coinledger-backend/internal/auth"
)

// Store is the persistence surface the account handlers need.
type Store interface {
	List(ctx context.Context, userID string) ([]Account, error)
	EnsureDefault(ctx context.Context, userID string) error
	Get(ctx context.Context, userID, id string) (Account, error)
	Create(ctx context.Context, a *Account) (Account, error)
	Update(ctx context.Context, a *Account) (Account, error)
	Delete(ctx context.Context, userID, id string) error
	MarkReportSent(ctx context.Context, userID, id string) error
}

type Handler struct {
	Store Store
	Audit *audit.Logger
}

func NewHandler(store Store, auditLog *audit.Logger) *Handler {
	return &Handler{Store: store, Audit: auditLog}
}

type createRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	IsDefault  bool   `json:"isDefault"`
	IsFeatured bool   `json:"isFeatured"`
}

type updateRequest struct {
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	IsDefault  *bool   `json:"isDefault"`
	IsFeatured *bool   `json:"isFeatured"`
}

// List returns the user's accounts with derived balances, lazily creating the
// default "Main Wallet" for first-time users.
func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ctx := userContext(c)
	items, err := h.Store.List(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list accounts: "+err.Error())
	}

	if len(items) == 0 {
		if err := h.Store.EnsureDefault(ctx, userID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to create default account: "+err.Error())
		}
		items, err = h.Store.List(ctx, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list accounts: "+err.Error())
		}
	}

	return c.JSON(items)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}
	if !ValidType(req.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "type must be cash, bank, person or other")
	}

	created, err := h.Store.Create(userContext(c), &Account{
		UserID:     userID,
		Name:       req.Name,
		Type:       req.Type,
		IsDefault:  req.IsDefault,
		IsFeatured: req.IsFeatured,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create account: "+err.Error())
	}

	h.Audit.Record(c, userID, "create", "account", created.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	id := c.Params("id")

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	ctx := userContext(c)
	existing, err := h.Store.Get(ctx, userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load account: "+err.Error())
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.IsDefault != nil {
		existing.IsDefault = *req.IsDefault
	}
	if req.IsFeatured != nil {
		existing.IsFeatured = *req.IsFeatured
	}

	if existing.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}
	if !ValidType(existing.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "type must be cash, bank, person or other")
	}

	updated, err := h.Store.Update(ctx, &existing)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update account: "+err.Error())
	}

	h.Audit.Record(c, userID, "update", "account", updated.ID)
	return c.JSON(updated)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	id := c.Params("id")

	err := h.Store.Delete(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}
	if errors.Is(err, ErrDefaultProtected) {
		return fiber.NewError(fiber.StatusBadRequest, "default account cannot be deleted")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete account: "+err.Error())
	}

	h.Audit.Record(c, userID, "delete", "account", id)
	return c.JSON(fiber.Map{"message": "account deleted"})
}

func (h *Handler) MarkReportSent(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	id := c.Params("id")

	err := h.Store.MarkReportSent(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "account not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to mark report sent: "+err.Error())
	}

	h.Audit.Record(c, userID, "mark-report-sent", "account", id)
	return c.JSON(fiber.Map{"message": "report marked as sent"})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
