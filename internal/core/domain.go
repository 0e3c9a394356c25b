package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

type (
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is one logged transaction owned by an account.
	Expense struct {
		ID          int64     `json:"id"`
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Date        Date      `json:"date"`
		Description string    `json:"description"`
		Currency    string    `json:"currency"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// Account is a registered local user together with its owned expenses.
	// The Expenses sequence is the sole source of truth for that user's ledger.
	Account struct {
		Email          string    `json:"email"`
		DisplayName    string    `json:"displayName"`
		CredentialHash string    `json:"credentialHash"`
		CreatedAt      time.Time `json:"createdAt"`
		Expenses       []Expense `json:"expenses"`
	}
)

var (
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrDuplicateAccount  = errors.New("account with this email already exists")
	ErrAccountNotFound   = errors.New("no account found with this email")
	ErrInvalidCredential = errors.New("incorrect password")
	ErrExpenseNotFound   = errors.New("expense not found")

	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidDate        = errors.New("invalid date")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryBills,
		CategoryHealth,
		CategoryEducation,
		CategoryOther,
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
		CategoryBills, CategoryHealth, CategoryEducation, CategoryOther:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// NormalizeEmail lower-cases and trims an email so it can serve as the
// account registry key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewDate creates a calendar date (UTC midnight, no time component).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date in ISO "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// InMonth reports whether the date falls in the given calendar year and month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

// Compare orders two dates: -1 if d is earlier, 0 if equal, +1 if later.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDate(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysIn returns the number of days in the given calendar month.
// Day zero of the following month is the last day of this one.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !ValidCurrency(e.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}
