package memo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yurifrl/ledgeru/pkg/models"
)

func TestBuildFullAnnotation(t *testing.T) {
	tx := &models.RawTransaction{
		Description:      "NETFLIX installment 3 of 12",
		Status:           models.StatusCompleted,
		ChargedAmount:    decimal.NewFromInt(-150),
		OriginalAmount:   decimal.RequireFromString("-35.50"),
		OriginalCurrency: "USD",
		Date:             "2024-03-10",
		ProcessedDate:    "2024-03-15",
		Identifier:       "abc123",
		Category:         "food",
		BankMemo:         "clerk note, aisle 4",
		AccountNumber:    "1234",
		AccountName:      "leumi",
	}

	got := Build(tx, &models.InstallmentInfo{Number: 3, Total: 12})
	want := `date: 2024-03-10, processed: 2024-03-15, installment: "3/12", ` +
		`original: -35.50 USD, ref: abc123, account: 1234, source: leumi, ` +
		`category: food, memo: "clerk note, aisle 4"`
	assert.Equal(t, want, got)
}

func TestBuildEmptyTransaction(t *testing.T) {
	got := Build(&models.RawTransaction{}, nil)
	assert.Empty(t, got, "no resolvable fields should yield an empty memo, not an empty structure")
}

func TestBuildOmitsDateWhenEqualToProcessed(t *testing.T) {
	tx := &models.RawTransaction{
		Date:          "2024-03-15T00:00:00+02:00",
		ProcessedDate: "2024-03-15",
	}
	got := Build(tx, nil)
	assert.Equal(t, "processed: 2024-03-15", got)
}

func TestBuildInstallmentFallsBackToRecord(t *testing.T) {
	tx := &models.RawTransaction{
		ProcessedDate: "2024-03-15",
		Installments:  &models.InstallmentInfo{Number: 2, Total: 6},
	}
	got := Build(tx, nil)
	assert.Contains(t, got, `installment: "2/6"`)
}

func TestBuildOriginalAmountWithinTolerance(t *testing.T) {
	tx := &models.RawTransaction{
		ChargedAmount:    decimal.RequireFromString("-100.00"),
		OriginalAmount:   decimal.RequireFromString("-100.005"),
		OriginalCurrency: "ILS",
		ProcessedDate:    "2024-03-15",
	}
	got := Build(tx, nil)
	assert.NotContains(t, got, "original:", "sub-tolerance difference is rounding noise, not a conversion")
}

func TestBuildOmitsNormalType(t *testing.T) {
	tx := &models.RawTransaction{ProcessedDate: "2024-03-15", Type: models.TypeNormal}
	assert.NotContains(t, Build(tx, nil), "type:")

	tx.Type = "standingOrder"
	assert.Contains(t, Build(tx, nil), "type: standingOrder")
}

func TestParseFieldsRoundTrip(t *testing.T) {
	fields := []Field{
		{Key: KeyProcessed, Value: "2024-03-15"},
		{Key: KeyInstallment, Value: "3/12"},
		{Key: KeySource, Value: "leumi"},
		{Key: KeyMemo, Value: `tricky "quoted", value: yes`},
	}

	parsed := ParseFields(Serialize(fields))
	assert.Equal(t, fields, parsed)
}

func TestLookup(t *testing.T) {
	text := Serialize([]Field{
		{Key: KeyProcessed, Value: "2024-03-15"},
		{Key: KeySource, Value: "itau-checking"},
	})

	assert.Equal(t, "itau-checking", Lookup(text, KeySource))
	assert.Equal(t, "", Lookup(text, KeyCategory))
	assert.Equal(t, "", Lookup("", KeySource))
}
