package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantro-labs/coinledger-backend/internal/money"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// List returns the user's accounts with balances derived from the signed sum
// of their transactions.
func (r *Repo) List(ctx context.Context, userID string) ([]Account, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT a.id::text, a.user_id::text, a.name, a.type, a.is_default, a.is_featured,
		       a.report_sent_at, a.created_at,
		       COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount
		                         WHEN t.type = 'expense' THEN -t.amount END), 0)::bigint AS balance
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.user_id = $1::uuid
		GROUP BY a.id
		ORDER BY a.created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Account, 0)
	for rows.Next() {
		var a Account
		var balance int64
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Type, &a.IsDefault, &a.IsFeatured,
			&a.ReportSentAt, &a.CreatedAt, &balance,
		); err != nil {
			return nil, err
		}
		a.Balance = money.Amount(balance)
		out = append(out, a)
	}
	return out, rows.Err()
}

// EnsureDefault creates the "Main Wallet" default account for users who have
// no accounts at all.
func (r *Repo) EnsureDefault(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO accounts (user_id, name, type, is_default)
		SELECT $1::uuid, $2, $3, true
		WHERE NOT EXISTS (SELECT 1 FROM accounts WHERE user_id = $1::uuid)
	`, userID, DefaultName, TypeCash)
	return err
}

func (r *Repo) Get(ctx context.Context, userID, id string) (Account, error) {
	var a Account
	err := r.Pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, name, type, is_default, is_featured, report_sent_at, created_at
		FROM accounts
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID).Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.IsDefault, &a.IsFeatured, &a.ReportSentAt, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

// Create persists a new account. When it is marked default, every other
// account of the user loses the flag in the same transaction.
func (r *Repo) Create(ctx context.Context, a *Account) (Account, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return Account{}, err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE accounts SET is_default = false WHERE user_id = $1::uuid`, a.UserID); err != nil {
			return Account{}, err
		}
	}

	var created Account
	err = tx.QueryRow(ctx, `
		INSERT INTO accounts (user_id, name, type, is_default, is_featured)
		VALUES ($1::uuid, $2, $3, $4, $5)
		RETURNING id::text, user_id::text, name, type, is_default, is_featured, report_sent_at, created_at
	`, a.UserID, a.Name, a.Type, a.IsDefault, a.IsFeatured).Scan(
		&created.ID, &created.UserID, &created.Name, &created.Type,
		&created.IsDefault, &created.IsFeatured, &created.ReportSentAt, &created.CreatedAt,
	)
	if err != nil {
		return Account{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, err
	}
	return created, nil
}

// Update rewrites the mutable fields, applying the same default-unset rule as
// Create.
func (r *Repo) Update(ctx context.Context, a *Account) (Account, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return Account{}, err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE accounts SET is_default = false WHERE user_id = $1::uuid AND id <> $2::uuid`,
			a.UserID, a.ID); err != nil {
			return Account{}, err
		}
	}

	var updated Account
	err = tx.QueryRow(ctx, `
		UPDATE accounts
		SET name = $3, type = $4, is_default = $5, is_featured = $6
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING id::text, user_id::text, name, type, is_default, is_featured, report_sent_at, created_at
	`, a.ID, a.UserID, a.Name, a.Type, a.IsDefault, a.IsFeatured).Scan(
		&updated.ID, &updated.UserID, &updated.Name, &updated.Type,
		&updated.IsDefault, &updated.IsFeatured, &updated.ReportSentAt, &updated.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Account{}, err
	}
	return updated, nil
}

// Delete removes a non-default account after moving its transactions to the
// user's default account. Deleting the default account is rejected.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var isDefault bool
	err = tx.QueryRow(ctx, `
		SELECT is_default FROM accounts
		WHERE id = $1::uuid AND user_id = $2::uuid
		FOR UPDATE
	`, id, userID).Scan(&isDefault)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if isDefault {
		return ErrDefaultProtected
	}

	var defaultID string
	err = tx.QueryRow(ctx, `
		SELECT id::text FROM accounts
		WHERE user_id = $1::uuid AND is_default AND id <> $2::uuid
		LIMIT 1
	`, userID, id).Scan(&defaultID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No default to absorb the transactions; create one.
		err = tx.QueryRow(ctx, `
			INSERT INTO accounts (user_id, name, type, is_default)
			VALUES ($1::uuid, $2, $3, true)
			RETURNING id::text
		`, userID, DefaultName, TypeCash).Scan(&defaultID)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE transactions SET account_id = $1::uuid
		WHERE account_id = $2::uuid AND user_id = $3::uuid
	`, defaultID, id, userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM accounts WHERE id = $1::uuid`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) MarkReportSent(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts SET report_sent_at = now()
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
