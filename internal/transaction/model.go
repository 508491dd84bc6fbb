package transaction

import (
	"errors"
	"time"

	"github.com/vantro-labs/coinledger-backend/internal/money"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var (
	ErrNotFound         = errors.New("transaction not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")
)

type Transaction struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	AccountID   string       `json:"accountId"`
	CategoryID  string       `json:"categoryId"`
	ItemID      *string      `json:"itemId,omitempty"`
	Amount      money.Amount `json:"amount"`
	Type        string       `json:"type"`
	Description *string      `json:"description,omitempty"`
	Date        string       `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time    `json:"createdAt"`

	// Populated references, only set on list reads.
	AccountName  string  `json:"accountName,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	CategoryIcon string  `json:"categoryIcon,omitempty"`
	ItemName     *string `json:"itemName,omitempty"`
}

func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
