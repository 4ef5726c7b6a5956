package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/ledgeru/pkg/models"
)

// parseStatementCSV reads a semicolon-delimited bank statement with
// date;description;value lines. Malformed rows are skipped with a debug log.
func (p *Parser) parseStatementCSV(data []byte) ([]models.RawTransaction, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var txs []models.RawTransaction
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV record: %w", err)
		}
		line++

		if len(record) < 3 {
			p.logger.Debug("csv line has less than 3 fields, skipping", "line", line)
			continue
		}

		amount, err := parseAmount(record[2])
		if err != nil {
			p.logger.Debug("invalid amount, skipping", "line", line, "err", err)
			continue
		}

		txs = append(txs, models.RawTransaction{
			Description:   strings.TrimSpace(record[1]),
			Status:        models.StatusCompleted,
			ChargedAmount: amount,
			ProcessedDate: isoDate(strings.TrimSpace(record[0])),
		})
	}
	return txs, nil
}

// isoDate converts the dd/mm/yyyy used by bank exports to the canonical
// form; anything else passes through for the date normalizer to judge.
func isoDate(raw string) string {
	if t, err := time.Parse("02/01/2006", raw); err == nil {
		return t.Format("2006-01-02")
	}
	return raw
}

// parseAmount reads a statement amount that may use a comma decimal
// separator and dot thousand separators.
func parseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	}
	return decimal.NewFromString(value)
}
