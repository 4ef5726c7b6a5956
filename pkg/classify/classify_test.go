package classify

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/ledgeru/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		tx     models.RawTransaction
		keep   bool
		reason string
	}{
		{
			name: "completed with amount",
			tx:   models.RawTransaction{Status: models.StatusCompleted, ChargedAmount: decimal.NewFromInt(-10)},
			keep: true,
		},
		{
			name:   "pending",
			tx:     models.RawTransaction{Status: models.StatusPending, ChargedAmount: decimal.NewFromInt(-10)},
			reason: models.ReasonPending,
		},
		{
			name:   "zero amount",
			tx:     models.RawTransaction{Status: models.StatusCompleted},
			reason: models.ReasonZeroAmount,
		},
		{
			// The pending check runs first; a pending zero-amount transaction
			// must never surface as "Zero amount".
			name:   "pending with zero amount",
			tx:     models.RawTransaction{Status: models.StatusPending},
			reason: models.ReasonPending,
		},
		{
			name: "cancelled with amount is kept",
			tx:   models.RawTransaction{Status: models.StatusCancelled, ChargedAmount: decimal.NewFromInt(5)},
			keep: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, reason := Classify(&tt.tx)
			if keep != tt.keep || reason != tt.reason {
				t.Errorf("Classify = (%v, %q), want (%v, %q)", keep, reason, tt.keep, tt.reason)
			}
		})
	}
}

func TestPartitionPreservesOrder(t *testing.T) {
	txs := []models.RawTransaction{
		{Description: "a", Status: models.StatusCompleted, ChargedAmount: decimal.NewFromInt(-1)},
		{Description: "b", Status: models.StatusPending},
		{Description: "c", Status: models.StatusCompleted, ChargedAmount: decimal.NewFromInt(2)},
		{Description: "d", Status: models.StatusCompleted},
	}

	kept, skipped := Partition(txs)

	if len(kept) != 2 || kept[0].Description != "a" || kept[1].Description != "c" {
		t.Errorf("kept = %+v, want [a c] in input order", kept)
	}
	if len(skipped) != 2 {
		t.Fatalf("skipped = %d items, want 2", len(skipped))
	}
	if skipped[0].Transaction.Description != "b" || skipped[0].Reason != models.ReasonPending {
		t.Errorf("skipped[0] = %+v, want b/Pending", skipped[0])
	}
	if skipped[1].Transaction.Description != "d" || skipped[1].Reason != models.ReasonZeroAmount {
		t.Errorf("skipped[1] = %+v, want d/Zero amount", skipped[1])
	}
}
