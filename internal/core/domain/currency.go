package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supported currency codes. ReferenceCurrency is the bridge currency used
// when no direct rate is available for a pair.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyINR = "INR"

	ReferenceCurrency = CurrencyINR
)

// SupportedCurrencies lists the currency codes the application accepts.
func SupportedCurrencies() []string {
	return []string{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyINR}
}

// IsSupportedCurrency reports whether code is one of the four supported codes.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies() {
		if c == code {
			return true
		}
	}
	return false
}

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // Decimal places for display
	AuditFields
}

// ExchangeRate stores the conversion rate between two currencies for a specific date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}
