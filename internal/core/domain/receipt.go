package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptExtraction is the best-effort tuple produced by a receipt (OCR) or
// voice extractor. The application does not depend on how it was produced;
// any extractor satisfying this shape can feed the receipt submission path.
type ReceiptExtraction struct {
	Amount  *decimal.Decimal `json:"amount,omitempty"`
	Date    *time.Time       `json:"date,omitempty"`
	Vendor  string           `json:"vendor,omitempty"`
	RawText string           `json:"rawText"`
}
