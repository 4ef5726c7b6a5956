package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"

	"github.com/yurifrl/ledgeru/pkg/models"
)

// parseStatementXLS reads an XLS bank statement. Rows before the
// "lançamentos" marker are account headers; transaction rows carry
// date, description and value columns.
func (p *Parser) parseStatementXLS(data []byte) ([]models.RawTransaction, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(1000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	var txs []models.RawTransaction
	var foundTransactions bool

	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(row[0]), "lançamentos") {
			foundTransactions = true
			continue
		}
		if !foundTransactions {
			continue
		}

		// Skip header and balance rows.
		if row[0] == "data" || strings.Contains(strings.ToUpper(row[1]), "SALDO") {
			continue
		}
		if strings.TrimSpace(row[0]) == "" {
			continue
		}

		amount, err := parseAmount(row[3])
		if err != nil {
			p.logger.Debug("invalid amount in xls row, skipping", "row", row, "err", err)
			continue
		}

		txs = append(txs, models.RawTransaction{
			Description:   strings.TrimSpace(row[1]),
			Status:        models.StatusCompleted,
			ChargedAmount: amount,
			ProcessedDate: isoDate(strings.TrimSpace(row[0])),
		})
	}

	return txs, nil
}
