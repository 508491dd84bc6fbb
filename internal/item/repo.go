package item

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

func (r *Repo) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT id::text, user_id::text, category_id::text, name, created_at
		FROM items
		WHERE user_id = $1::uuid
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.CategoryID, &it.Name, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userID, id string) (Item, error) {
	var it Item
	err := r.Pool.QueryRow(ctx, `
		SELECT id::text, user_id::text, category_id::text, name, created_at
		FROM items
		WHERE id = $1::uuid AND user_id = $2::uuid
	`, id, userID).Scan(&it.ID, &it.UserID, &it.CategoryID, &it.Name, &it.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

// Create persists an item after checking the category belongs to the user.
func (r *Repo) Create(ctx context.Context, it *Item) (Item, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1::uuid AND user_id = $2::uuid)
	`, it.CategoryID, it.UserID).Scan(&exists)
	if err != nil {
		return Item{}, err
	}
	if !exists {
		return Item{}, ErrCategoryNotFound
	}

	var created Item
	err = r.Pool.QueryRow(ctx, `
		INSERT INTO items (user_id, category_id, name)
		VALUES ($1::uuid, $2::uuid, $3)
		RETURNING id::text, user_id::text, category_id::text, name, created_at
	`, it.UserID, it.CategoryID, it.Name).Scan(
		&created.ID, &created.UserID, &created.CategoryID, &created.Name, &created.CreatedAt,
	)
	if err != nil {
		return Item{}, err
	}
	return created, nil
}

func (r *Repo) Update(ctx context.Context, it *Item) (Item, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1::uuid AND user_id = $2::uuid)
	`, it.CategoryID, it.UserID).Scan(&exists)
	if err != nil {
		return Item{}, err
	}
	if !exists {
		return Item{}, ErrCategoryNotFound
	}

	var updated Item
	err = r.Pool.QueryRow(ctx, `
		UPDATE items
		SET category_id = $3::uuid, name = $4
		WHERE id = $1::uuid AND user_id = $2::uuid
		RETURNING id::text, user_id::text, category_id::text, name, created_at
	`, it.ID, it.UserID, it.CategoryID, it.Name).Scan(
		&updated.ID, &updated.UserID, &updated.CategoryID, &updated.Name, &updated.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return updated, nil
}

// Delete removes an item unless transactions still reference it. There is no
// reassignment for items; deletion just blocks.
func (r *Repo) Delete(ctx context.Context, userID, id string) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM items WHERE id = $1::uuid AND user_id = $2::uuid)
	`, id, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	var inUse bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE item_id = $1::uuid)
	`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrInUse
	}

	if _, err := tx.Exec(ctx, `DELETE FROM items WHERE id = $1::uuid`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
