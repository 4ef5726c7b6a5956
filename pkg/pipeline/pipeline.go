package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ledgeru/pkg/audit"
	"github.com/yurifrl/ledgeru/pkg/classify"
	"github.com/yurifrl/ledgeru/pkg/models"
	"github.com/yurifrl/ledgeru/pkg/summary"
	"github.com/yurifrl/ledgeru/pkg/transform"
)

// Result is everything one run produces. The caller owns the export of Rows
// and calls Audit.RecordOutput afterwards.
type Result struct {
	Kept    []models.RawTransaction
	Skipped []models.SkippedItem
	Rows    []models.LedgerRow
	Summary *summary.TransactionSummary
	Audit   *audit.Log
}

// Pipeline runs the normalization steps over scraped source results. It is
// synchronous and holds no state between runs.
type Pipeline struct {
	logger      *log.Logger
	sampleLimit int
}

// New creates a pipeline. sampleLimit bounds the audit transformation
// sample; zero or negative keeps every pair.
func New(logger *log.Logger, sampleLimit int) *Pipeline {
	return &Pipeline{logger: logger, sampleLimit: sampleLimit}
}

// Run processes the per-source results into a normalized ledger with a fresh
// audit log stamped now.
func (p *Pipeline) Run(results []models.SourceResult) *Result {
	return p.RunAt(results, time.Now())
}

// RunAt is Run with an explicit run-start instant.
func (p *Pipeline) RunAt(results []models.SourceResult, timestamp time.Time) *Result {
	auditLog := audit.New(timestamp)
	auditLog.RecordResults(results)

	var all []models.RawTransaction
	for _, res := range results {
		if !res.Success {
			p.logger.Warn("source failed, excluding from run", "source", res.SourceName, "error", res.Error)
			continue
		}
		p.logger.Debug("collected source", "source", res.SourceName, "transactions", len(res.Transactions))
		all = append(all, res.Transactions...)
	}

	kept, skipped := classify.Partition(all)
	for _, item := range skipped {
		auditLog.RecordSkipped(item.Transaction, item.Reason)
		p.logger.Debug("skipped transaction", "reason", item.Reason, "description", item.Transaction.Description)
	}

	rows := transform.All(kept)

	pairs := make([]audit.TransformPair, 0, len(kept))
	for i := range kept {
		if row := transform.Row(&kept[i]); row != nil {
			pairs = append(pairs, audit.TransformPair{Raw: kept[i], Row: *row})
		}
	}
	auditLog.RecordTransformSample(pairs, p.sampleLimit)

	p.logger.Info("run complete", "kept", len(kept), "skipped", len(skipped), "rows", len(rows))

	return &Result{
		Kept:    kept,
		Skipped: skipped,
		Rows:    rows,
		Summary: summary.Summarize(kept),
		Audit:   auditLog,
	}
}
