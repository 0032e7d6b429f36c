package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewExpense(t *testing.T) {
	t.Parallel() // Enable parallel execution
	carID := uuid.New()

	expense, err := NewExpense(carID, "Fill-up", 62.40, "2025-07-02", ExpenseCategoryFuel)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if expense.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if expense.CarID != carID {
		t.Errorf("Expected car ID %s, got %s", carID, expense.CarID)
	}

	if expense.Category != ExpenseCategoryFuel {
		t.Errorf("Expected category %s, got %s", ExpenseCategoryFuel, expense.Category)
	}

	// Test invalid car ID
	_, err = NewExpense(uuid.Nil, "Fill-up", 62.40, "2025-07-02", ExpenseCategoryFuel)
	if err != ErrExpenseCarIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrExpenseCarIDEmpty, err)
	}

	// Test empty title
	_, err = NewExpense(carID, "", 62.40, "2025-07-02", ExpenseCategoryFuel)
	if err != ErrExpenseTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrExpenseTitleEmpty, err)
	}

	// Test empty date
	_, err = NewExpense(carID, "Fill-up", 62.40, "", ExpenseCategoryFuel)
	if err != ErrExpenseDateEmpty {
		t.Errorf("Expected error %v, got %v", ErrExpenseDateEmpty, err)
	}

	// Test invalid category
	_, err = NewExpense(carID, "Fill-up", 62.40, "2025-07-02", ExpenseCategory("Groceries"))
	if err != ErrExpenseCategoryInvalid {
		t.Errorf("Expected error %v, got %v", ErrExpenseCategoryInvalid, err)
	}
}

func TestExpenseCategoryValid(t *testing.T) {
	t.Parallel() // Enable parallel execution
	valid := []ExpenseCategory{
		ExpenseCategoryFuel,
		ExpenseCategoryMaintenance,
		ExpenseCategoryInsurance,
		ExpenseCategoryTax,
		ExpenseCategoryOther,
	}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("Expected category %q to be valid", c)
		}
	}

	invalid := []ExpenseCategory{"", "fuel", "MAINTENANCE", "Groceries"}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("Expected category %q to be invalid", c)
		}
	}
}
