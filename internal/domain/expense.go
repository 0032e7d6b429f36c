package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Expense-specific validation errors
var (
	// ErrExpenseIDEmpty is returned when an expense ID is empty or nil.
	ErrExpenseIDEmpty = errors.New("expense ID cannot be empty")

	// ErrExpenseCarIDEmpty is returned when an expense's car ID is empty or nil.
	ErrExpenseCarIDEmpty = errors.New("expense car ID cannot be empty")

	// ErrExpenseTitleEmpty is returned when an expense's title is empty.
	ErrExpenseTitleEmpty = errors.New("expense title cannot be empty")

	// ErrExpenseDateEmpty is returned when an expense's date is empty.
	ErrExpenseDateEmpty = errors.New("expense date cannot be empty")

	// ErrExpenseCategoryInvalid is returned when an expense category is not
	// one of the fixed enumeration values.
	ErrExpenseCategoryInvalid = errors.New("invalid expense category")
)

// ExpenseCategory classifies an expense into one of a fixed enumeration.
type ExpenseCategory string

// The fixed set of expense categories.
const (
	ExpenseCategoryFuel        ExpenseCategory = "Fuel"
	ExpenseCategoryMaintenance ExpenseCategory = "Maintenance"
	ExpenseCategoryInsurance   ExpenseCategory = "Insurance"
	ExpenseCategoryTax         ExpenseCategory = "Tax"
	ExpenseCategoryOther       ExpenseCategory = "Other"
)

// Valid reports whether the category is one of the fixed enumeration values.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryFuel,
		ExpenseCategoryMaintenance,
		ExpenseCategoryInsurance,
		ExpenseCategoryTax,
		ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense represents a cost entry for a car. Expenses are created either
// explicitly or as the Maintenance-category side effect of logging a service.
type Expense struct {
	ID       uuid.UUID       `json:"id"`
	CarID    uuid.UUID       `json:"carId"`
	Title    string          `json:"title"`
	Amount   float64         `json:"amount"`
	Date     string          `json:"date"`
	Category ExpenseCategory `json:"category"`
}

// NewExpense creates a new Expense with the given fields.
// It generates a new UUID for the expense ID.
// Returns an error if validation fails.
func NewExpense(
	carID uuid.UUID,
	title string,
	amount float64,
	date string,
	category ExpenseCategory,
) (*Expense, error) {
	expense := &Expense{
		ID:       uuid.New(),
		CarID:    carID,
		Title:    title,
		Amount:   amount,
		Date:     date,
		Category: category,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	return expense, nil
}

// Validate checks if the Expense has valid data.
// Returns an error if any field fails validation.
func (e *Expense) Validate() error {
	if e.ID == uuid.Nil {
		return ErrExpenseIDEmpty
	}

	if e.CarID == uuid.Nil {
		return ErrExpenseCarIDEmpty
	}

	if e.Title == "" {
		return ErrExpenseTitleEmpty
	}

	if e.Date == "" {
		return ErrExpenseDateEmpty
	}

	if !e.Category.Valid() {
		return ErrExpenseCategoryInvalid
	}

	return nil
}
