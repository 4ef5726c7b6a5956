package classify

import "github.com/yurifrl/ledgeru/pkg/models"

// Classify decides whether a transaction is ledger material. The pending
// check runs before the amount check, so a pending zero-amount transaction
// is always reported as pending. The returned reason is empty for kept
// transactions.
func Classify(tx *models.RawTransaction) (keep bool, reason string) {
	if tx.Status == models.StatusPending {
		return false, models.ReasonPending
	}
	if tx.ChargedAmount.IsZero() {
		return false, models.ReasonZeroAmount
	}
	return true, ""
}

// Partition splits transactions into kept and skipped lists, preserving
// input order within each.
func Partition(txs []models.RawTransaction) (kept []models.RawTransaction, skipped []models.SkippedItem) {
	for _, tx := range txs {
		if keep, reason := Classify(&tx); keep {
			kept = append(kept, tx)
		} else {
			skipped = append(skipped, models.SkippedItem{Transaction: tx, Reason: reason})
		}
	}
	return kept, skipped
}
