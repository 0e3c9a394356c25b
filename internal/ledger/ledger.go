// Package ledger implements CRUD and derived queries over the active
// account's expense records. Mutations operate on an in-memory copy and flush
// synchronously through the session store's persistence hook; queries never
// write.
package ledger

import (
	"context"
	"fmt"
	"time"

	"exptrack/internal/core"
	"exptrack/internal/log"
)

// Persister writes an account's expense sequence back to durable storage.
// Implemented by the session store.
type Persister interface {
	PersistExpenses(ctx context.Context, email string, records []core.Expense) error
}

// Fields carries the caller-editable parts of an expense. ID and CreatedAt
// are managed by the ledger and never settable.
type Fields struct {
	Amount      core.Money
	Category    core.Category
	Date        core.Date
	Description string
	Currency    string
}

// Ledger is the per-account expense collection. One instance per active
// session; not safe for concurrent use.
type Ledger struct {
	email     string
	records   []core.Expense
	persister Persister
	logger    *log.Logger
	nextID    int64
	now       func() time.Time
}

// New builds a ledger over the account's records. The record sequence is
// copied; the account is not written to again except through the persister.
func New(acct *core.Account, persister Persister, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	l := &Ledger{
		email:     acct.Email,
		records:   append([]core.Expense(nil), acct.Expenses...),
		persister: persister,
		logger:    logger.WithComponent("ledger"),
		now:       time.Now,
	}
	l.nextID = seedNextID(l.records, l.now())
	return l
}

// seedNextID starts the id counter at the current wall clock in milliseconds,
// bumped past any id already present so reloaded ledgers never collide.
func seedNextID(records []core.Expense, now time.Time) int64 {
	next := now.UnixMilli()
	for _, e := range records {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}

// Add validates fields, assigns a fresh id, and prepends the record.
// Newest-first is the display convention, not an ordering over Date.
func (l *Ledger) Add(ctx context.Context, f Fields) (core.Expense, error) {
	e := core.Expense{
		ID:          l.nextID,
		Amount:      f.Amount,
		Category:    f.Category,
		Date:        f.Date,
		Description: f.Description,
		Currency:    f.Currency,
		CreatedAt:   l.now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	prev := l.records
	l.records = append([]core.Expense{e}, l.records...)
	if err := l.flush(ctx); err != nil {
		l.records = prev
		return core.Expense{}, err
	}
	l.nextID++

	l.logger.Debug("expense added", "id", e.ID, "category", e.Category, "amount_cents", e.Amount.Cents)
	return e, nil
}

// Update replaces all fields of the matching record except ID and CreatedAt.
func (l *Ledger) Update(ctx context.Context, id int64, f Fields) (core.Expense, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return core.Expense{}, core.ErrExpenseNotFound
	}

	e := l.records[idx]
	e.Amount = f.Amount
	e.Category = f.Category
	e.Date = f.Date
	e.Description = f.Description
	e.Currency = f.Currency
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	prev := l.records[idx]
	l.records[idx] = e
	if err := l.flush(ctx); err != nil {
		l.records[idx] = prev
		return core.Expense{}, err
	}

	l.logger.Debug("expense updated", "id", id)
	return e, nil
}

// Remove deletes the matching record and reports whether one was removed.
func (l *Ledger) Remove(ctx context.Context, id int64) (bool, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	prev := l.records
	l.records = append(append([]core.Expense(nil), l.records[:idx]...), l.records[idx+1:]...)
	if err := l.flush(ctx); err != nil {
		l.records = prev
		return false, err
	}

	l.logger.Debug("expense removed", "id", id)
	return true, nil
}

// Clear empties the record sequence.
func (l *Ledger) Clear(ctx context.Context) error {
	prev := l.records
	l.records = []core.Expense{}
	if err := l.flush(ctx); err != nil {
		l.records = prev
		return err
	}

	l.logger.Info("ledger cleared", "email", l.email, "removed", len(prev))
	return nil
}

// List returns records matching the filter. The result is a fresh slice.
func (l *Ledger) List(f core.Filter) []core.Expense {
	return f.Apply(l.records)
}

// Totals computes the dashboard summary relative to a reference date.
func (l *Ledger) Totals(ref core.Date) core.Totals {
	return core.Summarize(l.records, ref)
}

// Trend buckets spending per month over the trailing window ending at ref.
func (l *Ledger) Trend(ref core.Date, monthsBack int) []core.MonthBucket {
	return core.MonthlyTrend(l.records, ref, monthsBack)
}

// CategoryTotals sums spending per category across all records.
func (l *Ledger) CategoryTotals() []core.CategoryAmount {
	return core.CategoryTotals(l.records)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

func (l *Ledger) indexOf(id int64) int {
	for i, e := range l.records {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) flush(ctx context.Context) error {
	if err := l.persister.PersistExpenses(ctx, l.email, l.records); err != nil {
		return fmt.Errorf("persist expenses: %w", err)
	}
	return nil
}
