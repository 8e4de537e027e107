package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/expensly/expensly_backend/internal/platform/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"empty email", "", validation.ErrEmailRequired},
		{"missing domain dot", "a@b", validation.ErrEmailFormat},
		{"missing at sign", "a.b.com", validation.ErrEmailFormat},
		{"contains whitespace", "a b@example.com", validation.ErrEmailFormat},
		{"valid email", "a@b.com", nil},
		{"valid email with subdomain", "finance@corp.example.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Email(tt.email)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestExpenseAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr error
	}{
		{"zero amount", decimal.Zero, validation.ErrAmountNotPositive},
		{"negative amount", decimal.NewFromFloat(-0.01), validation.ErrAmountNotPositive},
		{"over the maximum", decimal.NewFromFloat(1_000_000.01), validation.ErrAmountTooLarge},
		{"exactly the maximum", decimal.NewFromInt(1_000_000), nil},
		{"typical amount", decimal.NewFromFloat(150.00), nil},
		{"smallest positive amount", decimal.NewFromFloat(0.01), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ExpenseAmount(tt.amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBudget(t *testing.T) {
	assert.ErrorIs(t, validation.Budget(decimal.NewFromInt(-1)), validation.ErrBudgetNegative)
	assert.NoError(t, validation.Budget(decimal.Zero), "a zero budget is a valid ceiling")
	assert.NoError(t, validation.Budget(decimal.NewFromInt(5000)))
}

func TestDateNotAfter(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{"yesterday", now.AddDate(0, 0, -1), nil},
		{"earlier today", time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC), nil},
		{"later today is still today", time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC), nil},
		{"tomorrow", now.AddDate(0, 0, 1), validation.ErrDateInFuture},
		{"next month", now.AddDate(0, 1, 0), validation.ErrDateInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.DateNotAfter(tt.date, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	assert.NoError(t, validation.Description(""))
	assert.NoError(t, validation.Description(strings.Repeat("x", validation.MaxDescriptionLength)))
	assert.ErrorIs(t, validation.Description(strings.Repeat("x", validation.MaxDescriptionLength+1)), validation.ErrDescriptionTooLong)
}

func TestURL(t *testing.T) {
	assert.NoError(t, validation.URL("https://receipts.example.com/abc.pdf"))
	assert.ErrorIs(t, validation.URL("https://receipts.example.com/"+strings.Repeat("x", validation.MaxURLLength)), validation.ErrURLTooLong)
}
