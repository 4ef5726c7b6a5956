package ynab

import (
	"fmt"

	"github.com/brunomvsouza/ynab.go"
	"github.com/brunomvsouza/ynab.go/api"
	"github.com/brunomvsouza/ynab.go/api/transaction"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/ledgeru/pkg/models"
)

// Client wraps the YNAB API client for pushing ledger rows.
type Client struct {
	client ynab.ClientServicer
}

func New(token string) *Client {
	return &Client{client: ynab.NewClient(token)}
}

// Push creates the given ledger rows as transactions on a YNAB account.
func (c *Client) Push(budgetID, accountID string, rows []models.LedgerRow) error {
	payloads, err := Payloads(accountID, rows)
	if err != nil {
		return err
	}
	if len(payloads) == 0 {
		return nil
	}
	if _, err := c.client.Transaction().CreateTransactions(budgetID, payloads); err != nil {
		return fmt.Errorf("failed to create transactions: %w", err)
	}
	return nil
}

// Payloads converts ledger rows to YNAB transaction payloads. Amounts are
// milliunits, negative for outflows.
func Payloads(accountID string, rows []models.LedgerRow) ([]transaction.PayloadTransaction, error) {
	payloads := make([]transaction.PayloadTransaction, 0, len(rows))
	for _, row := range rows {
		amount, err := milliunits(row)
		if err != nil {
			return nil, err
		}

		date, err := api.DateFromString(row.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid row date %q: %w", row.Date, err)
		}

		payee := row.Payee
		memo := row.Memo
		payloads = append(payloads, transaction.PayloadTransaction{
			AccountID: accountID,
			Date:      date,
			Amount:    amount,
			Cleared:   transaction.ClearingStatusCleared,
			Approved:  false,
			PayeeName: &payee,
			Memo:      &memo,
		})
	}
	return payloads, nil
}

func milliunits(row models.LedgerRow) (int64, error) {
	if row.Outflow != "" {
		v, err := decimal.NewFromString(row.Outflow)
		if err != nil {
			return 0, fmt.Errorf("invalid outflow %q: %w", row.Outflow, err)
		}
		return v.Neg().Mul(decimal.NewFromInt(1000)).IntPart(), nil
	}
	v, err := decimal.NewFromString(row.Inflow)
	if err != nil {
		return 0, fmt.Errorf("invalid inflow %q: %w", row.Inflow, err)
	}
	return v.Mul(decimal.NewFromInt(1000)).IntPart(), nil
}
