package reports

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vantro-labs/coinledger-backend/internal/auth"
)

type Store interface {
	Statement(ctx context.Context, userID, from, to string) (Statement, error)
	Export(ctx context.Context, userID string) ([]Row, error)
}

type Handler struct {
	Store Store

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store, Now: time.Now}
}

// StatementPDF streams a PDF statement for the requested period. Without
// explicit bounds it covers the trailing 30 days.
func (h *Handler) StatementPDF(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	now := h.Now()
	if from == "" || to == "" {
		from = now.AddDate(0, 0, -29).Format("2006-01-02")
		to = now.Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "to must be YYYY-MM-DD")
	}
	if to < from {
		return fiber.NewError(fiber.StatusBadRequest, "to must not precede from")
	}

	stmt, err := h.Store.Statement(userContext(c), userID, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build statement: "+err.Error())
	}

	pdfBytes, err := buildStatementPDF(stmt, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "pdf build failed: "+err.Error())
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="statement-`+from+`-to-`+to+`.pdf"`)
	return c.Send(pdfBytes)
}

// ExportXLSX streams the user's full ledger as a spreadsheet.
func (h *Handler) ExportXLSX(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := h.Store.Export(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export transactions: "+err.Error())
	}

	xlsxBytes, err := buildExportXLSX(rows)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "xlsx build failed: "+err.Error())
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="transactions-`+h.Now().Format("20060102")+`.xlsx"`)
	return c.Send(xlsxBytes)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
