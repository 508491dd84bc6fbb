package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindows(t *testing.T) {
	now := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)

	assert.Equal(t, Window{From: "2026-03-15", To: "2026-03-15"}, Daily(now))
	assert.Equal(t, Window{From: "2026-03-09", To: "2026-03-15"}, Weekly(now))
	assert.Equal(t, Window{From: "2026-03-01", To: "2026-03-15"}, Monthly(now))
}

func TestWeekly_CrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Window{From: "2026-02-24", To: "2026-03-02"}, Weekly(now))
}

func TestMonthly_FirstOfMonth(t *testing.T) {
	now := time.Date(2026, time.July, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, Window{From: "2026-07-01", To: "2026-07-01"}, Monthly(now))
}
