package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/audit"
	"github.com/vantro-labs/coinledger-backend/internal/auth"
	"github.com/vantro-labs/coinledger-backend/internal/money"
)

// Store is the persistence surface the transaction handlers need.
type Store interface {
	ResolveDefaultAccount(ctx context.Context, userID string) (string, error)
	ResolveDefaultCategory(ctx context.Context, userID, typ string) (string, error)
	Create(ctx context.Context, t *Transaction) (Transaction, error)
	List(ctx context.Context, userID, accountID string) ([]Transaction, error)
	Get(ctx context.Context, userID, id string) (Transaction, error)
	Update(ctx context.Context, t *Transaction) (Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}

type Handler struct {
	Store Store
	Audit *audit.Logger
}

func NewHandler(store Store, auditLog *audit.Logger) *Handler {
	return &Handler{Store: store, Audit: auditLog}
}

type createRequest struct {
	AccountID   string       `json:"accountId"`
	CategoryID  string       `json:"categoryId"`
	ItemID      *string      `json:"itemId"`
	Amount      money.Amount `json:"amount"`
	Type        string       `json:"type"`
	Description *string      `json:"description"`
	Date        string       `json:"date"`
}

type updateRequest struct {
	AccountID   *string       `json:"accountId"`
	CategoryID  *string       `json:"categoryId"`
	ItemID      *string       `json:"itemId"`
	Amount      *money.Amount `json:"amount"`
	Type        *string       `json:"type"`
	Description *string       `json:"description"`
	Date        *string       `json:"date"`
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

	if !ValidType(req.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
	}
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	ctx := userContext(c)

	accountID := strings.TrimSpace(req.AccountID)
	if accountID == "" {
		var err error
		accountID, err = h.Store.ResolveDefaultAccount(ctx, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve default account: "+err.Error())
		}
	}

	categoryID := strings.TrimSpace(req.CategoryID)
	if categoryID == "" {
		var err error
		categoryID, err = h.Store.ResolveDefaultCategory(ctx, userID, req.Type)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve default category: "+err.Error())
		}
	}

	created, err := h.Store.Create(ctx, &Transaction{
		UserID:      userID,
		AccountID:   accountID,
		CategoryID:  categoryID,
		ItemID:      req.ItemID,
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		if status, msg, ok := refError(err); ok {
			return fiber.NewError(status, msg)
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create transaction: "+err.Error())
	}

	h.Audit.Record(c, userID, "create", "transaction", created.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	accountID := strings.TrimSpace(c.Query("accountId"))

	items, err := h.Store.List(userContext(c), userID, accountID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list transactions: "+err.Error())
	}
	return c.JSON(items)
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
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transaction: "+err.Error())
	}

	if req.AccountID != nil {
		existing.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		existing.CategoryID = *req.CategoryID
	}
	if req.ItemID != nil {
		if *req.ItemID == "" {
			existing.ItemID = nil
		} else {
			existing.ItemID = req.ItemID
		}
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.Type != nil {
		existing.Type = *req.Type
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.Date != nil {
		existing.Date = *req.Date
	}

	if !ValidType(existing.Type) {
		return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
	}
	if existing.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}
	if _, err := time.Parse("2006-01-02", existing.Date); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	updated, err := h.Store.Update(ctx, &existing)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if err != nil {
		if status, msg, ok := refError(err); ok {
			return fiber.NewError(status, msg)
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update transaction: "+err.Error())
	}

	h.Audit.Record(c, userID, "update", "transaction", updated.ID)
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
		return fiber.NewError(fiber.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete transaction: "+err.Error())
	}

	h.Audit.Record(c, userID, "delete", "transaction", id)
	return c.JSON(fiber.Map{"message": "transaction deleted"})
}

// refError maps missing-reference errors onto 404s; a reference another user
// owns is indistinguishable from one that does not exist.
func refError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return fiber.StatusNotFound, "account not found", true
	case errors.Is(err, ErrCategoryNotFound):
		return fiber.StatusNotFound, "category not found", true
	case errors.Is(err, ErrItemNotFound):
		return fiber.StatusNotFound, "item not found", true
	}
	return 0, "", false
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
