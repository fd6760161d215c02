package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultExpenseCategories are offered as suggestions; any non-empty
// category is accepted.
var DefaultExpenseCategories = []string{
	"Combustible",
	"Mantenimiento",
	"Refacciones",
	"Transporte",
	"Alimentación",
	"Otro",
}

type Expense struct {
	ID          uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
}

func NewExpense(category, description string, amount decimal.Decimal) (*Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, newValidationError("category", "is required")
	}
	if amount.IsNegative() {
		return nil, newValidationError("amount", "must not be negative")
	}
	return &Expense{
		ID:          uuid.New(),
		Category:    category,
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}, nil
}
