package item

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInUse            = errors.New("item is referenced by transactions")
)

// Item is an optional sub-classification under a category.
type Item struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}
