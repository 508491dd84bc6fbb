package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantro-labs/coinledger-backend/internal/money"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// SumWindow aggregates income and expense totals for a single date range.
func (r *Repo) SumWindow(ctx context.Context, userID string, w Window) (Stats, error) {
	var income, expenses int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)::bigint,
		       COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)::bigint
		FROM transactions
		WHERE user_id = $1::uuid AND date BETWEEN $2::date AND $3::date
	`, userID, w.From, w.To).Scan(&income, &expenses)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Income:   money.Amount(income),
		Expenses: money.Amount(expenses),
		Balance:  money.Amount(income - expenses),
	}, nil
}

// MonthWise returns the all-time month-by-month series, oldest first.
func (r *Repo) MonthWise(ctx context.Context, userID string) ([]MonthStats, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT EXTRACT(YEAR FROM date)::int,
		       EXTRACT(MONTH FROM date)::int,
		       COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)::bigint,
		       COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)::bigint
		FROM transactions
		WHERE user_id = $1::uuid
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MonthStats, 0)
	for rows.Next() {
		var m MonthStats
		var income, expenses int64
		if err := rows.Scan(&m.Year, &m.Month, &income, &expenses); err != nil {
			return nil, err
		}
		m.Income = money.Amount(income)
		m.Expenses = money.Amount(expenses)
		m.Balance = money.Amount(income - expenses)
		out = append(out, m)
	}
	return out, rows.Err()
}
