// Package expense defines the expense record produced by a statement import.
package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/statement-importer/pkg/money"
)

// MaxDescriptionLength matches the width of the description column.
const MaxDescriptionLength = 255

// ErrInvalidExpense is wrapped by every validation failure in New.
var ErrInvalidExpense = errors.New("invalid expense")

// Expense is a single outgoing payment owned by a user.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Description string
	// Amount is always positive, in major units.
	Amount   decimal.Decimal
	Currency string
	Date     time.Time
}

// Params are the fields needed to build an Expense.
type Params struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Description string
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
}

// New validates p and returns an Expense with a fresh ID and a positive amount.
func New(p Params) (*Expense, error) {
	desc := strings.TrimSpace(p.Description)
	amount := p.Amount.Abs()

	switch {
	case p.UserID == uuid.Nil:
		return nil, invalid("user id is required")
	case p.CategoryID == uuid.Nil:
		return nil, invalid("category id is required")
	case desc == "":
		return nil, invalid("description is required")
	case utf8.RuneCountInString(desc) > MaxDescriptionLength:
		return nil, invalid(fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength))
	case !amount.IsPositive():
		return nil, invalid("amount must be greater than zero")
	case p.Date.IsZero():
		return nil, invalid("date is required")
	case !money.IsKnownCurrency(p.Currency):
		return nil, invalid(fmt.Sprintf("unknown currency %q", p.Currency))
	}

	return &Expense{
		ID:          uuid.New(),
		UserID:      p.UserID,
		CategoryID:  p.CategoryID,
		Description: desc,
		Amount:      amount,
		Currency:    strings.ToUpper(p.Currency),
		Date:        time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC),
	}, nil
}

// Minor returns the amount in minor units of the expense currency.
func (e *Expense) Minor() (int64, error) {
	m, err := money.NewFromDecimal(e.Amount, e.Currency)
	if err != nil {
		return 0, err
	}
	return m.Amount(), nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidExpense, msg)
}
