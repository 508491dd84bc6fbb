package reports

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

// Statement loads the user's transactions inside [from, to] newest first and
// totals them in one pass.
func (r *Repo) Statement(ctx context.Context, userID, from, to string) (Statement, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT t.id::text, t.type, t.date::text, a.name, c.name, COALESCE(t.description, ''), t.amount
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1::uuid AND t.date BETWEEN $2::date AND $3::date
		ORDER BY t.date DESC, t.created_at DESC
	`, userID, from, to)
	if err != nil {
		return Statement{}, err
	}
	defer rows.Close()

	stmt := Statement{From: from, To: to, Rows: make([]Row, 0)}
	for rows.Next() {
		var row Row
		var amount int64
		if err := rows.Scan(&row.ID, &row.Type, &row.Date, &row.Account, &row.Category, &row.Note, &amount); err != nil {
			return Statement{}, err
		}
		row.Amount = money.Amount(amount)
		if row.Type == "income" {
			stmt.TotalIncome += row.Amount
		} else {
			stmt.TotalExpenses += row.Amount
		}
		stmt.Rows = append(stmt.Rows, row)
	}
	return stmt, rows.Err()
}

// Export loads the user's whole ledger, newest first.
func (r *Repo) Export(ctx context.Context, userID string) ([]Row, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT t.id::text, t.type, t.date::text, a.name, c.name, COALESCE(t.description, ''), t.amount
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1::uuid
		ORDER BY t.date DESC, t.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		var row Row
		var amount int64
		if err := rows.Scan(&row.ID, &row.Type, &row.Date, &row.Account, &row.Category, &row.Note, &amount); err != nil {
			return nil, err
		}
		row.Amount = money.Amount(amount)
		out = append(out, row)
	}
	return out, rows.Err()
}
