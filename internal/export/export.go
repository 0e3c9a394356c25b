// Package export renders expense listings for file download. It consumes
// ledger list output; file writing itself is the caller's concern.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"exptrack/internal/core"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatJSON
}

// Filename returns the conventional export file name for the given day,
// e.g. "expenses_2024-01-20.csv".
func Filename(f Format, day core.Date) string {
	return fmt.Sprintf("expenses_%s.%s", day, f)
}

// Write renders records in the requested format.
func Write(w io.Writer, f Format, records []core.Expense) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteCSV renders records with a fixed header row. The description field is
// double-quoted; no further escaping is applied.
func WriteCSV(w io.Writer, records []core.Expense) error {
	var b strings.Builder
	b.WriteString("ID,Date,Category,Description,Amount,Currency")
	for _, e := range records {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%d,%s,%s,\"%s\",%s,%s",
			e.ID, e.Date, e.Category, e.Description, e.Amount, e.Currency)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders the full record sequence with human-readable indentation.
func WriteJSON(w io.Writer, records []core.Expense) error {
	if records == nil {
		records = []core.Expense{}
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// ParseJSON decodes a JSON export back into records.
func ParseJSON(r io.Reader) ([]core.Expense, error) {
	var records []core.Expense
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	return records, nil
}

// Today is a convenience for building the default export file name.
func Today(f Format) string {
	return Filename(f, core.DateOf(time.Now()))
}
