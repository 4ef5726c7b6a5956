package models

import "github.com/shopspring/decimal"

// TransactionStatus is the settlement state reported by the source.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusCancelled TransactionStatus = "cancelled"
	StatusOther     TransactionStatus = "other"
)

// TypeNormal is the default transaction type. Memos only surface the type
// when it differs from this sentinel.
const TypeNormal = "normal"

// UnknownSource keys transactions that carry no source account name.
const UnknownSource = "unknown"

// InstallmentInfo identifies one charge of a multi-installment purchase.
// Number is 1-based and never exceeds Total.
type InstallmentInfo struct {
	Number int `json:"number" yaml:"number"`
	Total  int `json:"total" yaml:"total"`
}

// RawTransaction is a transaction exactly as a bank or card source reported
// it, before normalization. ChargedAmount is negative for outflows, positive
// for inflows; zero means the source reported no amount. Date fields keep the
// source's original string representation.
type RawTransaction struct {
	Description      string            `json:"description" yaml:"description"`
	Status           TransactionStatus `json:"status" yaml:"status"`
	Type             string            `json:"type,omitempty" yaml:"type,omitempty"`
	ChargedAmount    decimal.Decimal   `json:"chargedAmount" yaml:"chargedAmount"`
	OriginalAmount   decimal.Decimal   `json:"originalAmount,omitempty" yaml:"originalAmount,omitempty"`
	OriginalCurrency string            `json:"originalCurrency,omitempty" yaml:"originalCurrency,omitempty"`
	Date             string            `json:"date,omitempty" yaml:"date,omitempty"`
	ProcessedDate    string            `json:"processedDate,omitempty" yaml:"processedDate,omitempty"`
	Identifier       string            `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Category         string            `json:"category,omitempty" yaml:"category,omitempty"`
	BankMemo         string            `json:"memo,omitempty" yaml:"memo,omitempty"`
	Installments     *InstallmentInfo  `json:"installments,omitempty" yaml:"installments,omitempty"`

	// Attached by the caller per institution, not part of the source payload.
	AccountNumber string `json:"accountNumber,omitempty" yaml:"accountNumber,omitempty"`
	AccountName   string `json:"accountName,omitempty" yaml:"accountName,omitempty"`
}

// SourceName returns the account name, or the unknown sentinel when the
// source never attached one.
func (t *RawTransaction) SourceName() string {
	if t.AccountName == "" {
		return UnknownSource
	}
	return t.AccountName
}

// LedgerRow is one normalized output row in YNAB import format. Exactly one
// of Outflow/Inflow is non-empty.
type LedgerRow struct {
	Date    string `json:"date"`
	Payee   string `json:"payee"`
	Memo    string `json:"memo"`
	Outflow string `json:"outflow"`
	Inflow  string `json:"inflow"`
}

// Skip reasons reported by the classifier.
const (
	ReasonPending    = "Pending"
	ReasonZeroAmount = "Zero amount"
)

// SkippedItem records a transaction excluded from the ledger and why.
type SkippedItem struct {
	Transaction RawTransaction
	Reason      string
}

// SourceResult is what the scraping collaborator hands over per institution.
// Transactions is only meaningful when Success is true.
type SourceResult struct {
	SourceName   string
	Success      bool
	Transactions []RawTransaction
	Error        string
}
