package transaction

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantro-labs/coinledger-backend/internal/account"
	"github.com/vantro-labs/coinledger-backend/internal/category"
	"github.com/vantro-labs/coinledger-backend/internal/money"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// ResolveDefaultAccount returns the account that should receive a transaction
// created without an explicit accountId: the default account, the oldest
// account if no default exists, or a freshly created "Main Wallet" when the
// user has no accounts at all.
func (r *Repo) ResolveDefaultAccount(ctx context.Context, userID string) (string, error) {
	var id string
	err := r.Pool.QueryRow(ctx, `
		SELECT id::text FROM accounts
		WHERE user_id = $1::uuid AND is_default
		LIMIT 1
	`, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	err = r.Pool.QueryRow(ctx, `
		SELECT id::text FROM accounts
		WHERE user_id = $1::uuid
		ORDER BY created_at ASC
		LIMIT 1
	`, userID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	err = r.Pool.QueryRow(ctx, `
		INSERT INTO accounts (user_id, name, type, is_default)
		VALUES ($1::uuid, $2, $3, true)
		RETURNING id::text
	`, userID, account.DefaultName, account.TypeCash).Scan(&id)
	return id, err
}

// ResolveDefaultCategory returns the same-type default category, creating it
// if the user does not have one yet.
func (r *Repo) ResolveDefaultCategory(ctx context.Context, userID, typ string) (string, error) {
	var id string
	err := r.Pool.QueryRow(ctx, `
		SELECT id::text FROM categories
		WHERE user_id = $1::uuid AND type = $2 AND is_default
		LIMIT 1
	`, userID, typ).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	err = r.Pool.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, type, is_default)
		VALUES ($1::uuid, $2, $3, true)
		RETURNING id::text
	`, userID, category.DefaultName(typ), typ).Scan(&id)
	return id, err
}

func (r *Repo) checkRefs(ctx context.Context, t *Transaction) error {
	var ok bool
	if err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1::uuid AND user_id = $2::uuid)
	`, t.AccountID, t.UserID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return ErrAccountNotFound
	}

	if err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1::uuid AND user_id = $2::uuid)
	`, t.CategoryID, t.UserID).Scan(&ok); err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}

	if t.ItemID != nil {
		if err := r.Pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM items WHERE id = $1::uuid AND user_id = $2::uuid)
		`, *t.ItemID, t.UserID).Scan(&ok); err != nil {
			return err
		}
		if !ok {
			return ErrItemNotFound
		}
	}
	return nil
}

func (r *Repo) Create(ctx context.Context, t *Transaction) (Transaction, error) {
	if err := r.checkRefs(ctx, t); err != nil {
		return Transaction{}, err
	}

	var created Transaction
	var amount int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, account_id, category_id, item_id, amount, type, description, date)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4::uuid, $5, $6, $7, $8::date)
		RETURNING id::text, user_id::text, account_id::text, category_id::text, item_id::text,
		          amount, type, description, date::text, created_at
	`, t.UserID, t.AccountID, t.CategoryID, t.ItemID, int64(t.Amount), t.Type, t.Description, t.Date).Scan(
		&created.ID, &created.UserID, &created.AccountID, &created.CategoryID, &created.ItemID,
		&amount, &created.Type, &created.Description, &created.Date, &created.CreatedAt,
	)
	if err != nil {
		return Transaction{}, err
	}
	created.Amount = money.Amount(amount)
	return created, nil
}

// List returns the user's transactions, newest first, populated with the
// account, category and item names clients display.
func (r *Repo) List(ctx context.Context, userID, accountID string) ([]Transaction, error) {
	query := `
		SELECT t.id::text, t.user_id::text, t.account_id::text, t.category_id::text, t.item_id::text,
		       t.amount, t.type, t.description, t.date::text, t.created_at,
		       a.name, c.name, c.icon, i.name
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		LEFT JOIN items i ON i.id = t.item_id
		WHERE t.user_id = $1::uuid`
	args := []any{userID}
	if accountID != "" {
		query += ` AND t.account_id = $2::uuid`
		args = append(args, accountID)
	}
	query += ` ORDER BY t.date DESC, t.created_at DESC`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		var amount int64
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.ItemID,
			&amount, &t.Type, &t.Description, &t.Date, &t.CreatedAt,
			&t.AccountName, &t.CategoryName, &t.CategoryIcon, &t.ItemName,
		); err != nil {
			return nil, err
		}
		t.Amount = money.Amount(amount)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userID, id string) (Transaction, error) {
	var t Transaction
	var amount int64
	err := r.Pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, account_id::text, category_id::text, item_id::text,
		       amount, type, description, date::text, created_at
		FROM transactions
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID).Scan(
		&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.ItemID,
		&amount, &t.Type, &t.Description, &t.Date, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, err
	}
	t.Amount = money.Amount(amount)
	return t, nil
}

func (r *Repo) Update(ctx context.Context, t *Transaction) (Transaction, error) {
	if err := r.checkRefs(ctx, t); err != nil {
		return Transaction{}, err
	}

	var updated Transaction
	var amount int64
	err := r.Pool.QueryRow(ctx, `
		UPDATE transactions
		SET account_id = $3::uuid, category_id = $4::uuid, item_id = $5::uuid,
		    amount = $6, type = $7, description = $8, date = $9::date
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING id::text, user_id::text, account_id::text, category_id::text, item_id::text,
		          amount, type, description, date::text, created_at
	`, t.ID, t.UserID, t.AccountID, t.CategoryID, t.ItemID, int64(t.Amount), t.Type, t.Description, t.Date).Scan(
		&updated.ID, &updated.UserID, &updated.AccountID, &updated.CategoryID, &updated.ItemID,
		&amount, &updated.Type, &updated.Description, &updated.Date, &updated.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrNotFound
	}
	if err != nil {
		return Transaction{}, err
	}
	updated.Amount = money.Amount(amount)
	return updated, nil
}

func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM transactions WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
