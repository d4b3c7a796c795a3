package expense

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Params {
	return Params{
		UserID:      uuid.New(),
		CategoryID:  uuid.New(),
		Description: "Grocery Store",
		Amount:      decimal.RequireFromString("-450.00"),
		Currency:    "inr",
		Date:        time.Date(2025, 10, 4, 15, 30, 0, 0, time.UTC),
	}
}

func TestNew(t *testing.T) {
	p := validParams()

	e, err := New(p)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, p.UserID, e.UserID)
	assert.Equal(t, p.CategoryID, e.CategoryID)
	assert.Equal(t, "Grocery Store", e.Description)
	assert.True(t, e.Amount.Equal(decimal.RequireFromString("450")))
	assert.Equal(t, "INR", e.Currency)
	assert.Equal(t, time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC), e.Date)

	minor, err := e.Minor()
	require.NoError(t, err)
	assert.Equal(t, int64(45000), minor)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		message string
	}{
		{"missing user", func(p *Params) { p.UserID = uuid.Nil }, "user id is required"},
		{"missing category", func(p *Params) { p.CategoryID = uuid.Nil }, "category id is required"},
		{"blank description", func(p *Params) { p.Description = "   " }, "description is required"},
		{"long description", func(p *Params) { p.Description = strings.Repeat("x", 256) }, "description exceeds 255 characters"},
		{"zero amount", func(p *Params) { p.Amount = decimal.Zero }, "amount must be greater than zero"},
		{"missing date", func(p *Params) { p.Date = time.Time{} }, "date is required"},
		{"unknown currency", func(p *Params) { p.Currency = "ABC1" }, `unknown currency "ABC1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			e, err := New(p)

			assert.Nil(t, e)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidExpense))
			assert.Equal(t, "invalid expense: "+tt.message, err.Error())
		})
	}
}
