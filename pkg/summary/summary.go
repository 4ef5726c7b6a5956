package summary

import (
	"github.com/shopspring/decimal"

	"github.com/yurifrl/ledgeru/pkg/models"
)

// AccountSummary aggregates kept transactions for one source account.
// Outflow and Inflow are both non-negative.
type AccountSummary struct {
	Source  string
	Count   int
	Outflow decimal.Decimal
	Inflow  decimal.Decimal
}

// TransactionSummary holds per-source aggregates in first-seen order plus
// run-wide totals. Totals are always the sum of the per-source values.
type TransactionSummary struct {
	Accounts     []AccountSummary
	TotalOutflow decimal.Decimal
	TotalInflow  decimal.Decimal

	index map[string]int
}

// Summarize aggregates a set of kept transactions per source account.
// Callers pass the classifier's kept output; skipped transactions must not
// reach here. Transactions without an account name land under "unknown".
func Summarize(txs []models.RawTransaction) *TransactionSummary {
	s := &TransactionSummary{index: map[string]int{}}
	for i := range txs {
		s.add(&txs[i])
	}
	return s
}

func (s *TransactionSummary) add(tx *models.RawTransaction) {
	name := tx.SourceName()
	i, ok := s.index[name]
	if !ok {
		i = len(s.Accounts)
		s.index[name] = i
		s.Accounts = append(s.Accounts, AccountSummary{Source: name})
	}

	acc := &s.Accounts[i]
	acc.Count++
	outflow, inflow := Split(tx.ChargedAmount)
	acc.Outflow = acc.Outflow.Add(outflow)
	acc.Inflow = acc.Inflow.Add(inflow)
	s.TotalOutflow = s.TotalOutflow.Add(outflow)
	s.TotalInflow = s.TotalInflow.Add(inflow)
}

// Account returns the summary for a source name, if present.
func (s *TransactionSummary) Account(name string) (AccountSummary, bool) {
	i, ok := s.index[name]
	if !ok {
		return AccountSummary{}, false
	}
	return s.Accounts[i], true
}

// Split maps a signed charged amount onto the non-negative outflow/inflow
// pair used throughout aggregation.
func Split(amount decimal.Decimal) (outflow, inflow decimal.Decimal) {
	if amount.IsNegative() {
		return amount.Abs(), decimal.Zero
	}
	return decimal.Zero, amount
}

// Flows totals the raw outflow and inflow over a transaction list without
// grouping. The audit recorder uses this on unfiltered source payloads.
func Flows(txs []models.RawTransaction) (outflow, inflow decimal.Decimal) {
	for i := range txs {
		o, in := Split(txs[i].ChargedAmount)
		outflow = outflow.Add(o)
		inflow = inflow.Add(in)
	}
	return outflow, inflow
}
