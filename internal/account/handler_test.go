package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	accounts []Account
	nextID   int
}

func (s *fakeStore) List(_ context.Context, userID string) ([]Account, error) {
	out := make([]Account, 0)
	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) EnsureDefault(_ context.Context, userID string) error {
	for _, a := range s.accounts {
		if a.UserID == userID {
			return nil
		}
	}
	s.nextID++
	s.accounts = append(s.accounts, Account{
		ID:        fmt.Sprintf("acc-%d", s.nextID),
		UserID:    userID,
		Name:      DefaultName,
		Type:      TypeCash,
		IsDefault: true,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *fakeStore) Get(_ context.Context, userID, id string) (Account, error) {
	for _, a := range s.accounts {
		if a.UserID == userID && a.ID == id {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (s *fakeStore) Create(_ context.Context, a *Account) (Account, error) {
	if a.IsDefault {
		for i := range s.accounts {
			if s.accounts[i].UserID == a.UserID {
				s.accounts[i].IsDefault = false
			}
		}
	}
	s.nextID++
	created := *a
	created.ID = fmt.Sprintf("acc-%d", s.nextID)
	created.CreatedAt = time.Now()
	s.accounts = append(s.accounts, created)
	return created, nil
}

func (s *fakeStore) Update(_ context.Context, a *Account) (Account, error) {
	for i := range s.accounts {
		if s.accounts[i].UserID == a.UserID && s.accounts[i].ID == a.ID {
			if a.IsDefault {
				for j := range s.accounts {
					if s.accounts[j].UserID == a.UserID && j != i {
						s.accounts[j].IsDefault = false
					}
				}
			}
			s.accounts[i] = *a
			return *a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (s *fakeStore) Delete(_ context.Context, userID, id string) error {
	for i, a := range s.accounts {
		if a.UserID == userID && a.ID == id {
			if a.IsDefault {
				return ErrDefaultProtected
			}
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *fakeStore) MarkReportSent(_ context.Context, userID, id string) error {
	now := time.Now()
	for i, a := range s.accounts {
		if a.UserID == userID && a.ID == id {
			s.accounts[i].ReportSentAt = &now
			return nil
		}
	}
	return ErrNotFound
}

func newTestApp(store Store) *fiber.App {
	h := NewHandler(store, nil)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "u1")
		return c.Next()
	})
	app.Get("/api/accounts", h.List)
	app.Post("/api/accounts", h.Create)
	app.Put("/api/accounts/:id", h.Update)
	app.Delete("/api/accounts/:id", h.Delete)
	app.Post("/api/accounts/:id/mark-report-sent", h.MarkReportSent)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out.Bytes()
}

func TestList_CreatesDefaultWhenEmpty(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	status, raw := doJSON(t, app, "GET", "/api/accounts", nil)
	require.Equal(t, fiber.StatusOK, status)

	var items []Account
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 1)
	assert.Equal(t, DefaultName, items[0].Name)
	assert.Equal(t, TypeCash, items[0].Type)
	assert.True(t, items[0].IsDefault)

	// A second list must not create another default.
	status, raw = doJSON(t, app, "GET", "/api/accounts", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 1)
}

func TestCreate(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	status, raw := doJSON(t, app, "POST", "/api/accounts", createRequest{
		Name: "Savings", Type: TypeBank, IsDefault: true,
	})
	require.Equal(t, fiber.StatusCreated, status)

	var created Account
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "Savings", created.Name)
	assert.True(t, created.IsDefault)

	t.Run("second default unsets the first", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/accounts", createRequest{
			Name: "Cash", Type: TypeCash, IsDefault: true,
		})
		require.Equal(t, fiber.StatusCreated, status)

		defaults := 0
		for _, a := range store.accounts {
			if a.IsDefault {
				defaults++
				assert.Equal(t, "Cash", a.Name)
			}
		}
		assert.Equal(t, 1, defaults)
	})

	t.Run("missing name", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/accounts", createRequest{Type: TypeBank})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("bad type", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/accounts", createRequest{Name: "X", Type: "crypto"})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestUpdate_SetDefault(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	doJSON(t, app, "POST", "/api/accounts", createRequest{Name: "A", Type: TypeCash, IsDefault: true})
	status, raw := doJSON(t, app, "POST", "/api/accounts", createRequest{Name: "B", Type: TypeBank})
	require.Equal(t, fiber.StatusCreated, status)

	var b Account
	require.NoError(t, json.Unmarshal(raw, &b))

	isDefault := true
	status, raw = doJSON(t, app, "PUT", "/api/accounts/"+b.ID, updateRequest{IsDefault: &isDefault})
	require.Equal(t, fiber.StatusOK, status)

	var updated Account
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.True(t, updated.IsDefault)
	assert.Equal(t, "B", updated.Name) // untouched fields survive partial updates

	defaults := 0
	for _, a := range store.accounts {
		if a.IsDefault {
			defaults++
			assert.Equal(t, b.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	t.Run("unknown id", func(t *testing.T) {
		status, _ := doJSON(t, app, "PUT", "/api/accounts/nope", updateRequest{IsDefault: &isDefault})
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestDelete(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	doJSON(t, app, "POST", "/api/accounts", createRequest{Name: "A", Type: TypeCash, IsDefault: true})
	status, raw := doJSON(t, app, "POST", "/api/accounts", createRequest{Name: "B", Type: TypeBank})
	require.Equal(t, fiber.StatusCreated, status)
	var b Account
	require.NoError(t, json.Unmarshal(raw, &b))

	t.Run("default is protected", func(t *testing.T) {
		defaultID := ""
		for _, a := range store.accounts {
			if a.IsDefault {
				defaultID = a.ID
			}
		}
		require.NotEmpty(t, defaultID)
		status, _ := doJSON(t, app, "DELETE", "/api/accounts/"+defaultID, nil)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("non-default deletes", func(t *testing.T) {
		status, _ := doJSON(t, app, "DELETE", "/api/accounts/"+b.ID, nil)
		assert.Equal(t, fiber.StatusOK, status)

		status, _ = doJSON(t, app, "DELETE", "/api/accounts/"+b.ID, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}

func TestMarkReportSent(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	_, raw := doJSON(t, app, "POST", "/api/accounts", createRequest{Name: "A", Type: TypeCash})
	var a Account
	require.NoError(t, json.Unmarshal(raw, &a))

	status, _ := doJSON(t, app, "POST", "/api/accounts/"+a.ID+"/mark-report-sent", nil)
	assert.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, store.accounts[0].ReportSentAt)

	status, _ = doJSON(t, app, "POST", "/api/accounts/missing/mark-report-sent", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
