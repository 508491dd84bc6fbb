package category

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/audit"
	"github.com/vantro-labs/coinledger-backend/internal/auth"
)

// Store is the persistence surface the category handlers need.
type Store interface {
	List(ctx context.Context, userID string) ([]Category, error)
	EnsureDefaults(ctx context.Context, userID string) error
	Get(ctx context.Context, userID, id string) (Category, error)
	Create(ctx context.Context, cat *Category) (Category, error)
	Update(ctx context.Context, cat *Category) (Category, error)
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
	Name string `json:"name"`
	Type string `json:"type"`
	Icon string `json:"icon"`
}

type updateRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

// List returns the user's categories, lazily creating the per-type defaults.
func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	ctx := userContext(c)
	if err := h.Store.EnsureDefaults(ctx, userID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create default categories: "+err.Error())
	}

	items, err := h.Store.List(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list categories: "+err.Error())
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
		return fiber.NewError(fiber.StatusBadRequest, "type must be income or expense")
	}

	created, err := h.Store.Create(userContext(c), &Category{
		UserID: userID,
		Name:   req.Name,
		Type:   req.Type,
		Icon:   req.Icon,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create category: "+err.Error())
	}

	h.Audit.Record(c, userID, "create", "category", created.ID)
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
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load category: "+err.Error())
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Icon != nil {
		existing.Icon = *req.Icon
	}
	if existing.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name required")
	}

	updated, err := h.Store.Update(ctx, &existing)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update category: "+err.Error())
	}

	h.Audit.Record(c, userID, "update", "category", updated.ID)
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
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if errors.Is(err, ErrDefaultProtected) {
		return fiber.NewError(fiber.StatusBadRequest, "default category cannot be deleted")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete category: "+err.Error())
	}

	h.Audit.Record(c, userID, "delete", "category", id)
	return c.JSON(fiber.Map{"message": "category deleted"})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
