package dates

import (
	"fmt"
	"time"
)

// Layout is the canonical calendar-date format for ledger rows.
const Layout = "2006-01-02"

// Source systems report dates either as full ISO-8601 instants with an
// offset or as bare calendar dates.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	Layout,
}

// FormatError reports an attempt to format a value that never parsed as a
// date. Formatting is the one place where an invalid date is a contract
// violation rather than a recoverable condition.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format unparseable date %q", e.Value)
}

// Parse resolves a date-like string to a calendar instant. The second return
// is false when no known layout matches.
func Parse(value string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders a date-like string as YYYY-MM-DD in its own calendar-local
// components. Callers are expected to have validated the value already.
func Format(value string) (string, error) {
	t, ok := Parse(value)
	if !ok {
		return "", &FormatError{Value: value}
	}
	return t.Format(Layout), nil
}

// SpreadForInstallment returns the ledger date for the given installment
// index: the charge date itself for installment 1, shifted forward one
// calendar day per later index. Budgeting tools drop same-date/same-amount
// rows as duplicates, so recurring installment charges are deliberately
// staggered; the true charge date stays visible in the memo. Unparseable
// input is returned unchanged.
func SpreadForInstallment(value string, number int) string {
	t, ok := Parse(value)
	if !ok {
		return value
	}
	return t.AddDate(0, 0, number-1).Format(Layout)
}
