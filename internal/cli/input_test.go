package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exptrack/internal/core"
)

func TestExpenseInputFields(t *testing.T) {
	in := ExpenseInput{
		Amount:      "12.50",
		Category:    "Food",
		Date:        "2024-01-15",
		Description: "  lunch  ",
		Currency:    "eur",
	}

	fields, err := in.Fields("USD")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), fields.Amount.Cents)
	assert.Equal(t, core.CategoryFood, fields.Category)
	assert.Equal(t, "2024-01-15", fields.Date.String())
	assert.Equal(t, "lunch", fields.Description)
	assert.Equal(t, "EUR", fields.Currency)
}

func TestExpenseInputDefaultCurrency(t *testing.T) {
	in := ExpenseInput{Amount: "5", Category: "Bills", Date: "2024-02-01"}

	fields, err := in.Fields("NPR")
	require.NoError(t, err)
	assert.Equal(t, "NPR", fields.Currency)
}

func TestExpenseInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   ExpenseInput
		wantErr string
	}{
		{
			name:    "missing amount",
			input:   ExpenseInput{Category: "Food", Date: "2024-01-15"},
			wantErr: "amount",
		},
		{
			name:    "unknown category",
			input:   ExpenseInput{Amount: "5", Category: "Groceries", Date: "2024-01-15"},
			wantErr: "category",
		},
		{
			name:    "bad date layout",
			input:   ExpenseInput{Amount: "5", Category: "Food", Date: "15/01/2024"},
			wantErr: "date",
		},
		{
			name:    "currency too long",
			input:   ExpenseInput{Amount: "5", Category: "Food", Date: "2024-01-15", Currency: "EURO"},
			wantErr: "currency",
		},
		{
			name:    "description too long",
			input:   ExpenseInput{Amount: "5", Category: "Food", Date: "2024-01-15", Description: strings.Repeat("x", 201)},
			wantErr: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.Fields("USD")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpenseInputRejectsNegativeAmount(t *testing.T) {
	in := ExpenseInput{Amount: "-5.00", Category: "Food", Date: "2024-01-15"}

	_, err := in.Fields("USD")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func TestReadPasswordFromPipe(t *testing.T) {
	var out strings.Builder

	got, err := ReadPassword(strings.NewReader("hunter2\n"), &out, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
	assert.Equal(t, "Password: ", out.String())
}
