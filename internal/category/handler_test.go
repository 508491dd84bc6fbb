package category

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
	categories []Category
	nextID     int
}

func (s *fakeStore) List(_ context.Context, userID string) ([]Category, error) {
	out := make([]Category, 0)
	for _, cat := range s.categories {
		if cat.UserID == userID {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (s *fakeStore) EnsureDefaults(_ context.Context, userID string) error {
	for _, typ := range []string{TypeIncome, TypeExpense} {
		found := false
		for _, cat := range s.categories {
			if cat.UserID == userID && cat.Type == typ && cat.IsDefault {
				found = true
			}
		}
		if !found {
			s.nextID++
			s.categories = append(s.categories, Category{
				ID:        fmt.Sprintf("cat-%d", s.nextID),
				UserID:    userID,
				Name:      DefaultName(typ),
				Type:      typ,
				IsDefault: true,
				CreatedAt: time.Now(),
			})
		}
	}
	return nil
}

func (s *fakeStore) Get(_ context.Context, userID, id string) (Category, error) {
	for _, cat := range s.categories {
		if cat.UserID == userID && cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, ErrNotFound
}

func (s *fakeStore) Create(_ context.Context, cat *Category) (Category, error) {
	s.nextID++
	created := *cat
	created.ID = fmt.Sprintf("cat-%d", s.nextID)
	created.CreatedAt = time.Now()
	s.categories = append(s.categories, created)
	return created, nil
}

func (s *fakeStore) Update(_ context.Context, cat *Category) (Category, error) {
	for i := range s.categories {
		if s.categories[i].UserID == cat.UserID && s.categories[i].ID == cat.ID {
			s.categories[i].Name = cat.Name
			s.categories[i].Icon = cat.Icon
			return s.categories[i], nil
		}
	}
	return Category{}, ErrNotFound
}

func (s *fakeStore) Delete(_ context.Context, userID, id string) error {
	for i, cat := range s.categories {
		if cat.UserID == userID && cat.ID == id {
			if cat.IsDefault {
				return ErrDefaultProtected
			}
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
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
	app.Get("/api/categories", h.List)
	app.Post("/api/categories", h.Create)
	app.Put("/api/categories/:id", h.Update)
	app.Delete("/api/categories/:id", h.Delete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var buf []byte
	if body != nil {
		var err error
		buf, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out.Bytes()
}

func TestList_CreatesPerTypeDefaults(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	status, raw := doJSON(t, app, "GET", "/api/categories", nil)
	require.Equal(t, fiber.StatusOK, status)

	var items []Category
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 2)

	byType := map[string]Category{}
	for _, cat := range items {
		byType[cat.Type] = cat
	}
	assert.Equal(t, DefaultIncomeName, byType[TypeIncome].Name)
	assert.Equal(t, DefaultExpenseName, byType[TypeExpense].Name)
	assert.True(t, byType[TypeIncome].IsDefault)
	assert.True(t, byType[TypeExpense].IsDefault)

	// Listing again must not duplicate defaults.
	_, raw = doJSON(t, app, "GET", "/api/categories", nil)
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 2)
}

func TestCreateCategory(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	status, raw := doJSON(t, app, "POST", "/api/categories", createRequest{
		Name: "Groceries", Type: TypeExpense, Icon: "cart",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var created Category
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "Groceries", created.Name)
	assert.False(t, created.IsDefault)

	t.Run("invalid type", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/categories", createRequest{Name: "X", Type: "transfer"})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("missing name", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/api/categories", createRequest{Type: TypeIncome})
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestUpdateCategory(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	_, raw := doJSON(t, app, "POST", "/api/categories", createRequest{Name: "Groceries", Type: TypeExpense})
	var created Category
	require.NoError(t, json.Unmarshal(raw, &created))

	name := "Food"
	status, raw := doJSON(t, app, "PUT", "/api/categories/"+created.ID, updateRequest{Name: &name})
	require.Equal(t, fiber.StatusOK, status)

	var updated Category
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Food", updated.Name)
	assert.Equal(t, TypeExpense, updated.Type)

	status, _ = doJSON(t, app, "PUT", "/api/categories/missing", updateRequest{Name: &name})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteCategory(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	// Seed defaults plus one custom category.
	doJSON(t, app, "GET", "/api/categories", nil)
	_, raw := doJSON(t, app, "POST", "/api/categories", createRequest{Name: "Groceries", Type: TypeExpense})
	var custom Category
	require.NoError(t, json.Unmarshal(raw, &custom))

	t.Run("default rejected", func(t *testing.T) {
		var defaultID string
		for _, cat := range store.categories {
			if cat.IsDefault && cat.Type == TypeExpense {
				defaultID = cat.ID
			}
		}
		require.NotEmpty(t, defaultID)
		status, _ := doJSON(t, app, "DELETE", "/api/categories/"+defaultID, nil)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("custom deletes", func(t *testing.T) {
		status, _ := doJSON(t, app, "DELETE", "/api/categories/"+custom.ID, nil)
		assert.Equal(t, fiber.StatusOK, status)

		status, _ = doJSON(t, app, "DELETE", "/api/categories/"+custom.ID, nil)
		assert.Equal(t, fiber.StatusNotFound, status)
	})
}
