package audit

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/ledgeru/pkg/dates"
	"github.com/yurifrl/ledgeru/pkg/models"
	"github.com/yurifrl/ledgeru/pkg/summary"
)

// TransformPair couples a raw transaction with the ledger row it produced,
// kept for diagnostic inspection only.
type TransformPair struct {
	Raw models.RawTransaction
	Row models.LedgerRow
}

// Log accumulates the provenance of one pipeline run: per-source account
// summaries, skipped transactions, a bounded transformation sample and the
// final output figures. It is owned by exactly one run and must not be
// shared; concurrent runs each construct their own.
type Log struct {
	timestamp time.Time

	accounts []summary.AccountSummary
	skipped  []models.SkippedItem

	sample      []TransformPair
	sampleTotal int

	hasOutput bool
	outputRef string
	rowCount  int
	outflow   decimal.Decimal
	inflow    decimal.Decimal
	checksum  string
}

// New creates an empty log stamped with the run start instant.
func New(timestamp time.Time) *Log {
	return &Log{timestamp: timestamp}
}

// RecordResults appends one account summary per successful source result,
// in the order given. The flows are computed over the source's raw payload,
// before any filtering, so these totals can legitimately exceed the final
// ledger totals when transactions are later skipped. Failed results are not
// materialized here; their errors are reported by the caller.
func (l *Log) RecordResults(results []models.SourceResult) {
	for _, res := range results {
		if !res.Success {
			continue
		}
		outflow, inflow := summary.Flows(res.Transactions)
		l.accounts = append(l.accounts, summary.AccountSummary{
			Source:  res.SourceName,
			Count:   len(res.Transactions),
			Outflow: outflow,
			Inflow:  inflow,
		})
	}
}

// RecordSkipped appends one skipped transaction. Callable incrementally
// during classification.
func (l *Log) RecordSkipped(tx models.RawTransaction, reason string) {
	l.skipped = append(l.skipped, models.SkippedItem{Transaction: tx, Reason: reason})
}

// RecordTransformSample stores at most limit pairs verbatim; limit <= 0
// keeps all of them. A second call replaces the first.
func (l *Log) RecordTransformSample(pairs []TransformPair, limit int) {
	l.sampleTotal = len(pairs)
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	l.sample = append([]TransformPair(nil), pairs...)
}

// RecordOutput captures what was exported: the file reference, the row
// count, totals recomputed from the rows themselves and a checksum of the
// exported bytes. The totals are deliberately re-parsed from the row
// strings, independent of the aggregator, so drift between the two code
// paths shows up in the report.
func (l *Log) RecordOutput(rows []models.LedgerRow, outputRef string, content []byte) {
	l.hasOutput = true
	l.outputRef = outputRef
	l.rowCount = len(rows)
	l.outflow = decimal.Zero
	l.inflow = decimal.Zero
	for _, row := range rows {
		if row.Outflow != "" {
			if v, err := decimal.NewFromString(row.Outflow); err == nil {
				l.outflow = l.outflow.Add(v)
			}
		}
		if row.Inflow != "" {
			if v, err := decimal.NewFromString(row.Inflow); err == nil {
				l.inflow = l.inflow.Add(v)
			}
		}
	}
	l.checksum = Checksum(content)
}

// Checksum digests exported content down to a short hex prefix, enough to
// notice tampering or a stale file.
func Checksum(content []byte) string {
	digest := sha256.Sum256(content)
	return fmt.Sprintf("%x", digest)[:8]
}

// Render produces the human-readable run report. It is read-only and
// idempotent: it reflects whatever has been recorded so far, and the section
// headers are stable for callers that parse the report back.
func (l *Log) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ledger run %s\n\n", l.timestamp.Format(time.RFC3339))

	b.WriteString("Accounts:\n")
	if len(l.accounts) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, acc := range l.accounts {
		fmt.Fprintf(&b, "  %s: %d transactions, outflow %s, inflow %s\n",
			acc.Source, acc.Count, acc.Outflow.StringFixed(2), acc.Inflow.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nSkipped (%d):\n", len(l.skipped))
	if len(l.skipped) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, item := range l.skipped {
		tx := item.Transaction
		fmt.Fprintf(&b, "  - [%s] %q %s %s\n",
			item.Reason,
			strings.TrimSpace(tx.Description),
			tx.ChargedAmount.Abs().StringFixed(2),
			displayDate(&tx))
	}

	b.WriteString("\nOutput:\n")
	if !l.hasOutput {
		b.WriteString("  (no output recorded)\n")
	} else {
		fmt.Fprintf(&b, "  file: %s\n", l.outputRef)
		fmt.Fprintf(&b, "  rows: %d\n", l.rowCount)
		fmt.Fprintf(&b, "  outflow: %s\n", l.outflow.StringFixed(2))
		fmt.Fprintf(&b, "  inflow: %s\n", l.inflow.StringFixed(2))
		fmt.Fprintf(&b, "  checksum: %s\n", l.checksum)
	}

	if len(l.sample) > 0 {
		b.WriteString("\nTransformation Details:\n")
		for i, pair := range l.sample {
			fmt.Fprintf(&b, "  %d. raw %q %s -> row %s %q out=%s in=%s\n",
				i+1,
				strings.TrimSpace(pair.Raw.Description),
				pair.Raw.ChargedAmount.StringFixed(2),
				pair.Row.Date, pair.Row.Payee, pair.Row.Outflow, pair.Row.Inflow)
		}
		if l.sampleTotal > len(l.sample) {
			fmt.Fprintf(&b, "  (showing %d of %d)\n", len(l.sample), l.sampleTotal)
		} else {
			fmt.Fprintf(&b, "  (complete, %d pairs)\n", len(l.sample))
		}
	}

	return b.String()
}

func displayDate(tx *models.RawTransaction) string {
	raw := tx.ProcessedDate
	if raw == "" {
		raw = tx.Date
	}
	if raw == "" {
		return "-"
	}
	if formatted, err := dates.Format(raw); err == nil {
		return formatted
	}
	return raw
}
