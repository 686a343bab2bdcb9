// Package ratesource fetches daily exchange rates from an external JSON API.
package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_approval_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// HTTPRateSource fetches daily rates from a provider exposing the common
// `GET <baseURL>/<base>` shape with a top-level "rates" object.
type HTTPRateSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRateSource creates a rate source against the given provider base URL,
// e.g. "https://open.er-api.com/v6/latest".
func NewHTTPRateSource(baseURL string) *HTTPRateSource {
	return &HTTPRateSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Ensure HTTPRateSource implements the repository interface
var _ portsrepo.DailyRateSource = (*HTTPRateSource)(nil)

type ratesPayload struct {
	Result string                     `json:"result"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// FetchDailyRates returns today's rates relative to baseCurrency, filtered to
// the supported currency set. One unit of baseCurrency equals rates[code]
// units of code.
func (s *HTTPRateSource) FetchDailyRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	endpoint, err := url.JoinPath(s.baseURL, baseCurrency)
	if err != nil {
		return nil, fmt.Errorf("invalid rate source URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var payload ratesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if payload.Result != "" && payload.Result != "success" {
		return nil, fmt.Errorf("rate provider returned result %q", payload.Result)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no rates")
	}

	rates := make(map[string]decimal.Decimal, len(domain.SupportedCurrencies()))
	for _, code := range domain.SupportedCurrencies() {
		if rate, ok := payload.Rates[code]; ok && !rate.IsZero() {
			rates[code] = rate
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("rate provider returned no supported currencies")
	}

	return rates, nil
}
