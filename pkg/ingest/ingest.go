package ingest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/ledgeru/pkg/models"
)

// FileType identifies a supported statement format.
type FileType string

const (
	ScraperJSON  FileType = "scraper_json"
	StatementCSV FileType = "statement_csv"
	StatementXLS FileType = "statement_xls"
)

// Parser turns statement files into raw transactions. It stands in for the
// remote scraping side: whatever produced the file, the pipeline only ever
// sees RawTransaction values.
type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{logger: logger}
}

// ProcessBytes parses a statement file into raw transactions based on its
// filename.
func (p *Parser) ProcessBytes(data []byte, filename string) ([]models.RawTransaction, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	switch fileType {
	case ScraperJSON:
		return p.parseScraperJSON(data)
	case StatementCSV:
		return p.parseStatementCSV(data)
	case StatementXLS:
		return p.parseStatementXLS(data)
	default:
		return nil, fmt.Errorf("unknown file type for %s", filename)
	}
}

// Source reads one manifest statement and wraps the outcome as a
// SourceResult, attaching the account identity to every transaction. Parse
// failures become unsuccessful results, never errors; the pipeline reports
// them through the audit trail.
func (p *Parser) Source(stmt models.Statement) models.SourceResult {
	result := models.SourceResult{SourceName: stmt.Name}

	data, filename, err := stmt.Read()
	if err != nil {
		result.Error = err.Error()
		return result
	}

	txs, err := p.ProcessBytes(data, filename)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	for i := range txs {
		txs[i].AccountNumber = stmt.AccountNumber
		txs[i].AccountName = stmt.AccountName
	}
	result.Success = true
	result.Transactions = txs
	return result
}

func detectType(filename string) FileType {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".json"):
		return ScraperJSON
	case strings.HasSuffix(strings.ToLower(filename), ".csv"),
		strings.HasSuffix(strings.ToLower(filename), ".txt"):
		return StatementCSV
	case strings.HasSuffix(strings.ToLower(filename), ".xls"):
		return StatementXLS
	default:
		return ""
	}
}
