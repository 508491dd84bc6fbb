package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) List(ctx context.Context, userID string) ([]Category, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id::text, user_id::text, name, type, icon, is_default, created_at
		FROM categories
		WHERE user_id = $1::uuid
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.Icon, &cat.IsDefault, &cat.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

// EnsureDefaults creates the per-type default categories that are missing.
func (r *Repo) EnsureDefaults(ctx context.Context, userID string) error {
	for _, typ := range []string{TypeIncome, TypeExpense} {
		_, err := r.Pool.Exec(ctx, `
			INSERT INTO categories (user_id, name, type, is_default)
			SELECT $1::uuid, $2, $3, true
			WHERE NOT EXISTS (
				SELECT 1 FROM categories WHERE user_id = $1::uuid AND type = $3 AND is_default
			)
		`, userID, DefaultName(typ), typ)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, userID, id string) (Category, error) {
	var cat Category
	err := r.Pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, name, type, icon, is_default, created_at
		FROM categories
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID).Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.Icon, &cat.IsDefault, &cat.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *Repo) Create(ctx context.Context, cat *Category) (Category, error) {
	var created Category
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, type, icon)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id::text, user_id::text, name, type, icon, is_default, created_at
	`, cat.UserID, cat.Name, cat.Type, cat.Icon).Scan(
		&created.ID, &created.UserID, &created.Name, &created.Type,
		&created.Icon, &created.IsDefault, &created.CreatedAt,
	)
	if err != nil {
		return Category{}, err
	}
	return created, nil
}

// Update rewrites name and icon. Type and the default flag are immutable; the
// default flag only ever changes through the lazy-creation path.
func (r *Repo) Update(ctx context.Context, cat *Category) (Category, error) {
	var updated Category
	err := r.Pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $3, icon = $4
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING id::text, user_id::text, name, type, icon, is_default, created_at
	`, cat.ID, cat.UserID, cat.Name, cat.Icon).Scan(
		&updated.ID, &updated.UserID, &updated.Name, &updated.Type,
		&updated.Icon, &updated.IsDefault, &updated.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	return updated, nil
}

// Delete removes a non-default category after moving its transactions to the
// same-type default category.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var isDefault bool
	var typ string
	err = tx.QueryRow(ctx, `
		SELECT is_default, type FROM categories
		WHERE id = $1::uuid AND user_id = $2::uuid
		FOR UPDATE
	`, id, userID).Scan(&isDefault, &typ)
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
		SELECT id::text FROM categories
		WHERE user_id = $1::uuid AND type = $2 AND is_default AND id <> $3::uuid
		LIMIT 1
	`, userID, typ, id).Scan(&defaultID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `
			INSERT INTO categories (user_id, name, type, is_default)
			VALUES ($1::uuid, $2, $3, true)
			RETURNING id::text
		`, userID, DefaultName(typ), typ).Scan(&defaultID)
	}
	if err != nil {
		return err
	}

	// Items under the category move with its transactions.
	if _, err := tx.Exec(ctx, `
		UPDATE items SET category_id = $1::uuid
		WHERE category_id = $2::uuid AND user_id = $3::uuid
	`, defaultID, id, userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE transactions SET category_id = $1::uuid
		WHERE category_id = $2::uuid AND user_id = $3::uuid
	`, defaultID, id, userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM categories WHERE id = $1::uuid`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
