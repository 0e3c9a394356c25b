package cli

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"exptrack/internal/core"
	"exptrack/internal/ledger"
)

// ExpenseInput carries raw flag values for an expense before conversion to
// domain types.
type ExpenseInput struct {
	Amount      string `validate:"required"`
	Category    string `validate:"required,oneof=Food Transport Shopping Entertainment Bills Health Education Other"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Description string `validate:"max=200"`
	Currency    string `validate:"omitempty,len=3,alpha"`
}

var validate = validator.New()

// Fields validates the raw input and converts it into ledger fields.
// An empty currency falls back to the given default.
func (in ExpenseInput) Fields(defaultCurrency string) (ledger.Fields, error) {
	if err := validate.Struct(in); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			details := make([]string, 0, len(verrs))
			for _, verr := range verrs {
				details = append(details, fmt.Sprintf("%s failed on '%s'", strings.ToLower(verr.Field()), verr.Tag()))
			}
			return ledger.Fields{}, fmt.Errorf("invalid expense input: %s", strings.Join(details, "; "))
		}
		return ledger.Fields{}, err
	}

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return ledger.Fields{}, err
	}

	date, err := core.ParseDate(in.Date)
	if err != nil {
		return ledger.Fields{}, err
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	return ledger.Fields{
		Amount:      amount,
		Category:    core.Category(in.Category),
		Date:        date,
		Description: strings.TrimSpace(in.Description),
		Currency:    currency,
	}, nil
}
