package dashboard

import "github.com/vantro-labs/coinledger-backend/internal/money"

// Stats holds the aggregated totals for one window.
type Stats struct {
	Income   money.Amount `json:"income"`
	Expenses money.Amount `json:"expenses"`
	Balance  money.Amount `json:"balance"`
}

// MonthStats is one row of the all-time month-by-month series.
type MonthStats struct {
	Year     int          `json:"year"`
	Month    int          `json:"month"`
	Income   money.Amount `json:"income"`
	Expenses money.Amount `json:"expenses"`
	Balance  money.Amount `json:"balance"`
}

// Overview is the full dashboard payload.
type Overview struct {
	Daily     Stats        `json:"daily"`
	Weekly    Stats        `json:"weekly"`
	Monthly   Stats        `json:"monthly"`
	MonthWise []MonthStats `json:"monthWise"`
}
