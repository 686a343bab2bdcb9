package domain

import "github.com/shopspring/decimal"

// SpendBucket is one aggregated slice of the dashboard: total spend for a
// grouping key, both in the original currency and converted into the
// summary's target currency.
type SpendBucket struct {
	Key            string          `json:"key"` // Category, userID or currency code
	CurrencyCode   string          `json:"currencyCode"`
	Total          decimal.Decimal `json:"total"`
	ConvertedTotal decimal.Decimal `json:"convertedTotal"`
	Count          int             `json:"count"`
}

// SpendSummary is the dashboard aggregation over a date range.
type SpendSummary struct {
	TargetCurrency string          `json:"targetCurrency"`
	ByCategory     []SpendBucket   `json:"byCategory"`
	ByUser         []SpendBucket   `json:"byUser"`
	ByCurrency     []SpendBucket   `json:"byCurrency"`
	ByStatus       map[string]int  `json:"byStatus"`
	GrandTotal     decimal.Decimal `json:"grandTotal"` // In target currency
}
