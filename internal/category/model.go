package category

import (
	"errors"
	"time"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Default category names, one per type. They absorb transactions reassigned
// from deleted categories and cannot themselves be deleted.
const (
	DefaultIncomeName  = "Other Income"
	DefaultExpenseName = "Other Expenses"
)

var (
	ErrNotFound         = errors.New("category not found")
	ErrDefaultProtected = errors.New("default category cannot be deleted")
)

type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// DefaultName returns the default category name for a transaction type.
func DefaultName(typ string) string {
	if typ == TypeIncome {
		return DefaultIncomeName
	}
	return DefaultExpenseName
}
