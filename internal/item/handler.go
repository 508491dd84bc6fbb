package item

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/audit"
	"github.com/vantro-labs/coinledger-backend/internal/auth"
)

// Store is the persistence surface the item handlers need.
type Store interface {
	List(ctx context.Context, userID string) ([]Item, error)
	Get(ctx context.Context, userID, id string) (Item, error)
	Create(ctx context.Context, it *Item) (Item, error)
	Update(ctx context.Context, it *Item) (Item, error)
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
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

type updateRequest struct {
	CategoryID *string `json:"categoryId"`
	Name       *string `json:"name"`
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Store.List(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list items: "+err.Error())
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
	if strings.TrimSpace(req.CategoryID) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "categoryId required")
	}

	created, err := h.Store.Create(userContext(c), &Item{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
	})
	if errors.Is(err, ErrCategoryNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create item: "+err.Error())
	}

	h.Audit.Record(c, userID, "create", "item", created.ID)
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
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load item: "+err.Error())
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.CategoryID != nil {
		existing.CategoryID = *req.CategoryID
	}
	if existing.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}

	updated, err := h.Store.Update(ctx, &existing)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}
	if errors.Is(err, ErrCategoryNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update item: "+err.Error())
	}

	h.Audit.Record(c, userID, "update", "item", updated.ID)
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
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}
	if errors.Is(err, ErrInUse) {
		return fiber.NewError(fiber.StatusBadRequest, "item is referenced by transactions")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete item: "+err.Error())
	}

	h.Audit.Record(c, userID, "delete", "item", id)
	return c.JSON(fiber.Map{"message": "item deleted"})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
