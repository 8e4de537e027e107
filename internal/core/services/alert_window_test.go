package services

import (
	"testing"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAlertWindow(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	t.Run("daily window covers the current day", func(t *testing.T) {
		from, to := alertWindow(domain.AlertPeriodDaily, now)
		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("monthly window covers the current calendar month", func(t *testing.T) {
		from, to := alertWindow(domain.AlertPeriodMonthly, now)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("monthly window rolls over year boundaries", func(t *testing.T) {
		dec := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
		from, to := alertWindow(domain.AlertPeriodMonthly, dec)
		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("daily window at the end of february", func(t *testing.T) {
		feb := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
		from, to := alertWindow(domain.AlertPeriodDaily, feb)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), to)
	})
}
