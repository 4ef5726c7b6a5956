package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/yurifrl/ledgeru/pkg/memo"
	"github.com/yurifrl/ledgeru/pkg/models"
)

var header = []string{"Date", "Payee", "Memo", "Outflow", "Inflow"}

// WriteCSV writes ledger rows in YNAB import format.
func WriteCSV(w io.Writer, rows []models.LedgerRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Date, row.Payee, row.Memo, row.Outflow, row.Inflow}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Bytes renders rows to CSV in memory. The audit checksum is computed over
// exactly these bytes.
func Bytes(rows []models.LedgerRow) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SourceRows is one per-source export bucket.
type SourceRows struct {
	Source string
	Rows   []models.LedgerRow
}

// SplitBySource partitions rows for multi-file export, keyed by the source
// field embedded in each row's memo. Rows without one fall into the unknown
// bucket. Buckets appear in first-seen order.
func SplitBySource(rows []models.LedgerRow) []SourceRows {
	var buckets []SourceRows
	index := map[string]int{}
	for _, row := range rows {
		source := memo.Lookup(row.Memo, memo.KeySource)
		if source == "" {
			source = models.UnknownSource
		}
		i, ok := index[source]
		if !ok {
			i = len(buckets)
			index[source] = i
			buckets = append(buckets, SourceRows{Source: source})
		}
		buckets[i].Rows = append(buckets[i].Rows, row)
	}
	return buckets
}
