package memo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/ledgeru/pkg/dates"
	"github.com/yurifrl/ledgeru/pkg/models"
)

// Keys appear in the serialized annotation in this fixed order.
const (
	KeyDate        = "date"
	KeyProcessed   = "processed"
	KeyInstallment = "installment"
	KeyOriginal    = "original"
	KeyRef         = "ref"
	KeyAccount     = "account"
	KeySource      = "source"
	KeyType        = "type"
	KeyCategory    = "category"
	KeyMemo        = "memo"
)

// conversionTolerance separates genuine currency conversions from rounding
// noise between the original and charged amounts.
var conversionTolerance = decimal.New(1, -2)

// Field is one key/value pair of a serialized annotation.
type Field struct {
	Key   string
	Value string
}

// Build assembles the structured annotation for a transaction. Fields are
// emitted only when their source value resolves; when nothing does, the
// result is the empty string so callers can treat "no memo" as falsy.
// The installment argument takes precedence over any count already attached
// to the raw record.
func Build(tx *models.RawTransaction, installment *models.InstallmentInfo) string {
	var fields []Field
	add := func(key, value string) {
		if value != "" {
			fields = append(fields, Field{Key: key, Value: value})
		}
	}

	processed := displayDate(tx.ProcessedDate)
	if original := displayDate(tx.Date); original != "" && original != processed {
		add(KeyDate, original)
	}
	add(KeyProcessed, processed)

	if installment == nil {
		installment = tx.Installments
	}
	if installment != nil {
		add(KeyInstallment, fmt.Sprintf("%d/%d", installment.Number, installment.Total))
	}

	if tx.OriginalCurrency != "" && tx.OriginalAmount.Sub(tx.ChargedAmount).Abs().GreaterThan(conversionTolerance) {
		add(KeyOriginal, tx.OriginalAmount.StringFixed(2)+" "+tx.OriginalCurrency)
	}

	add(KeyRef, tx.Identifier)
	add(KeyAccount, tx.AccountNumber)
	add(KeySource, tx.AccountName)
	if tx.Type != "" && tx.Type != models.TypeNormal {
		add(KeyType, tx.Type)
	}
	add(KeyCategory, tx.Category)
	add(KeyMemo, tx.BankMemo)

	return Serialize(fields)
}

// Serialize renders fields as `key: value` pairs joined by ", ". Values
// containing a comma, quote, slash or colon are quoted so ParseFields can
// round-trip them.
func Serialize(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		if needsQuoting(f.Value) {
			b.WriteString(strconv.Quote(f.Value))
		} else {
			b.WriteString(f.Value)
		}
	}
	return b.String()
}

// ParseFields parses a serialized annotation back into its ordered fields.
// Malformed trailing input is dropped rather than reported; annotations are
// produced by Build and only ever re-read for export partitioning.
func ParseFields(text string) []Field {
	var fields []Field
	rest := text
	for rest != "" {
		sep := strings.Index(rest, ": ")
		if sep < 0 {
			break
		}
		key := rest[:sep]
		rest = rest[sep+2:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				break
			}
			value, _ = strconv.Unquote(quoted)
			rest = strings.TrimPrefix(rest[len(quoted):], ", ")
		} else if end := strings.Index(rest, ", "); end >= 0 {
			value = rest[:end]
			rest = rest[end+2:]
		} else {
			value = rest
			rest = ""
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	return fields
}

// Lookup returns the value of the named key inside a serialized annotation,
// or "" when absent.
func Lookup(text, key string) string {
	for _, f := range ParseFields(text) {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

func needsQuoting(value string) bool {
	return strings.ContainsAny(value, `,"/:`)
}

// displayDate prefers the canonical YYYY-MM-DD rendering and falls back to
// the source's raw string when it never parses.
func displayDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if formatted, err := dates.Format(value); err == nil {
		return formatted
	}
	return value
}
