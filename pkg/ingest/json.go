package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/yurifrl/ledgeru/pkg/models"
)

// parseScraperJSON reads a scraper export: a JSON array of raw transactions,
// optionally wrapped in an object under "txns".
func (p *Parser) parseScraperJSON(data []byte) ([]models.RawTransaction, error) {
	var txs []models.RawTransaction
	if err := json.Unmarshal(data, &txs); err == nil {
		return normalizeStatuses(txs), nil
	}

	var wrapped struct {
		Txns []models.RawTransaction `json:"txns"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse scraper export: %w", err)
	}
	return normalizeStatuses(wrapped.Txns), nil
}

// normalizeStatuses maps unrecognized status strings to the "other" bucket
// so the classifier only ever sees the known enum.
func normalizeStatuses(txs []models.RawTransaction) []models.RawTransaction {
	for i := range txs {
		switch txs[i].Status {
		case models.StatusCompleted, models.StatusPending, models.StatusCancelled:
		default:
			txs[i].Status = models.StatusOther
		}
	}
	return txs
}
