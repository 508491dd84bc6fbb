package account

import (
	"errors"
	"time"

	"github.com/vantro-labs/coinledger-backend/internal/money"
)

const (
	TypeCash   = "cash"
	TypeBank   = "bank"
	TypePerson = "person"
	TypeOther  = "other"
)

// DefaultName is the account auto-created for users who have none yet and the
// fallback target when another account is deleted.
const DefaultName = "Main Wallet"

var (
	ErrNotFound         = errors.New("account not found")
	ErrDefaultProtected = errors.New("default account cannot be deleted")
)

type Account struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	IsDefault  bool       `json:"isDefault"`
	IsFeatured bool       `json:"isFeatured"`
	// Balance is derived from transactions at read time, never stored.
	Balance      money.Amount `json:"balance"`
	ReportSentAt *time.Time   `json:"reportSentAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func ValidType(t string) bool {
	switch t {
	case TypeCash, TypeBank, TypePerson, TypeOther:
		return true
	}
	return false
}
