package reports

import "github.com/vantro-labs/coinledger-backend/internal/money"

// Row is one statement line, joined with the names clients expect to see.
type Row struct {
	ID       string
	Type     string
	Date     string
	Account  string
	Category string
	Note     string
	Amount   money.Amount
}

// Statement is a date-bounded slice of the ledger plus its totals.
type Statement struct {
	From          string
	To            string
	Rows          []Row
	TotalIncome   money.Amount
	TotalExpenses money.Amount
}

func (s Statement) Balance() money.Amount {
	return s.TotalIncome - s.TotalExpenses
}
