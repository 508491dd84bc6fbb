package account

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantro-labs/coinledger-backend/internal/money"
)

// Repo tests run against a real database and are skipped otherwise.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password_hash)
		VALUES ('Repo Test', $1, 'x')
		RETURNING id::text
	`, fmt.Sprintf("repo-test-%s@example.com", uuid.NewString())).Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1::uuid`, id)
	})
	return id
}

func createTestCategory(t *testing.T, pool *pgxpool.Pool, userID string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
		INSERT INTO categories (user_id, name, type, is_default)
		VALUES ($1::uuid, 'Other Expenses', 'expense', true)
		RETURNING id::text
	`, userID).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertTestTransaction(t *testing.T, pool *pgxpool.Pool, userID, accountID, categoryID, typ string, amount int64) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO transactions (user_id, account_id, category_id, amount, type, date)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, '2026-01-15')
	`, userID, accountID, categoryID, amount, typ)
	require.NoError(t, err)
}

func TestRepoDelete_ReassignsTransactionsToDefault(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := createTestUser(t, pool)
	repo := NewRepo(pool)

	def, err := repo.Create(ctx, &Account{UserID: userID, Name: DefaultName, Type: TypeCash, IsDefault: true})
	require.NoError(t, err)
	doomed, err := repo.Create(ctx, &Account{UserID: userID, Name: "Old Bank", Type: TypeBank})
	require.NoError(t, err)

	categoryID := createTestCategory(t, pool, userID)
	insertTestTransaction(t, pool, userID, doomed.ID, categoryID, "income", 10000)
	insertTestTransaction(t, pool, userID, doomed.ID, categoryID, "expense", 2500)

	require.NoError(t, repo.Delete(ctx, userID, doomed.ID))

	var moved int
	require.NoError(t, pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions WHERE user_id = $1::uuid AND account_id = $2::uuid
	`, userID, def.ID).Scan(&moved))
	assert.Equal(t, 2, moved)

	// The default account absorbed the balance; the deleted account is gone.
	accounts, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, def.ID, accounts[0].ID)
	assert.Equal(t, money.Amount(7500), accounts[0].Balance)
}

func TestRepoDelete_CreatesDefaultWhenMissing(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := createTestUser(t, pool)
	repo := NewRepo(pool)

	doomed, err := repo.Create(ctx, &Account{UserID: userID, Name: "Only Account", Type: TypeBank})
	require.NoError(t, err)

	categoryID := createTestCategory(t, pool, userID)
	insertTestTransaction(t, pool, userID, doomed.ID, categoryID, "income", 5000)

	require.NoError(t, repo.Delete(ctx, userID, doomed.ID))

	accounts, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, DefaultName, accounts[0].Name)
	assert.True(t, accounts[0].IsDefault)
	assert.Equal(t, money.Amount(5000), accounts[0].Balance)
}

func TestRepoDelete_DefaultProtected(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := createTestUser(t, pool)
	repo := NewRepo(pool)

	def, err := repo.Create(ctx, &Account{UserID: userID, Name: DefaultName, Type: TypeCash, IsDefault: true})
	require.NoError(t, err)

	err = repo.Delete(ctx, userID, def.ID)
	assert.ErrorIs(t, err, ErrDefaultProtected)

	_, err = repo.Get(ctx, userID, def.ID)
	assert.NoError(t, err)
}
