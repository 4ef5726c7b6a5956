package transform

import (
	"sort"
	"strings"

	"github.com/yurifrl/ledgeru/pkg/classify"
	"github.com/yurifrl/ledgeru/pkg/dates"
	"github.com/yurifrl/ledgeru/pkg/installments"
	"github.com/yurifrl/ledgeru/pkg/memo"
	"github.com/yurifrl/ledgeru/pkg/models"
)

// Row normalizes one raw transaction into a ledger row. It returns nil when
// the classifier would skip the transaction or when no usable date exists.
func Row(tx *models.RawTransaction) *models.LedgerRow {
	if keep, _ := classify.Classify(tx); !keep {
		return nil
	}

	installment := installments.Match(tx.Description)
	if installment == nil {
		installment = tx.Installments
	}

	// The processed (charge) date governs; the nominal transaction date is
	// only a fallback.
	rawDate := tx.ProcessedDate
	if rawDate == "" {
		rawDate = tx.Date
	}
	if rawDate == "" {
		return nil
	}

	var date string
	if installment != nil && installment.Number > 1 {
		date = dates.SpreadForInstallment(rawDate, installment.Number)
	} else {
		formatted, err := dates.Format(rawDate)
		if err != nil {
			return nil
		}
		date = formatted
	}

	row := &models.LedgerRow{
		Date:  date,
		Payee: strings.TrimSpace(tx.Description),
		Memo:  memo.Build(tx, installment),
	}
	if tx.ChargedAmount.IsNegative() {
		row.Outflow = tx.ChargedAmount.Abs().StringFixed(2)
	} else {
		row.Inflow = tx.ChargedAmount.StringFixed(2)
	}
	return row
}

// All transforms every transaction, drops the ones that produce no row, and
// orders the result by date descending. The formatted date string is the sort
// key; YYYY-MM-DD compares correctly as text.
func All(txs []models.RawTransaction) []models.LedgerRow {
	rows := make([]models.LedgerRow, 0, len(txs))
	for i := range txs {
		if row := Row(&txs[i]); row != nil {
			rows = append(rows, *row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})
	return rows
}
