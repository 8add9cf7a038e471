// Package fxapi fetches exchange rates from frankfurter.app, an ECB-backed
// FX API that requires no key. Rates come back as units of each requested
// symbol per 1 unit of the base currency, which is exactly the direction the
// rate store expects.
package fxapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendorfx/vendor_fx_app/internal/core/ports/providers"
)

// DefaultBaseURL is the public frankfurter.app endpoint.
const DefaultBaseURL = "https://api.frankfurter.app"

const requestTimeout = 15 * time.Second

// sourceLabel is recorded on every rate row stored from this provider.
const sourceLabel = "frankfurter.app"

// FrankfurterClient implements providers.RateProvider against frankfurter.app.
type FrankfurterClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFrankfurterClient creates a client for the given endpoint. An empty
// baseURL falls back to the public API.
func NewFrankfurterClient(baseURL string) *FrankfurterClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FrankfurterClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type latestResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates retrieves the latest rates from base to each of the symbols.
func (c *FrankfurterClient) FetchRates(ctx context.Context, base string, symbols []string) (*providers.RateQuote, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols requested")
	}

	params := url.Values{}
	params.Set("from", strings.ToUpper(base))
	params.Set("to", strings.ToUpper(strings.Join(symbols, ",")))
	endpoint := c.baseURL + "/latest?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate request returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate response contained no rates")
	}

	quote := &providers.RateQuote{
		Base:   body.Base,
		Date:   body.Date,
		Rates:  body.Rates,
		Source: sourceLabel,
	}
	if quote.Base == "" {
		quote.Base = strings.ToUpper(base)
	}
	return quote, nil
}
