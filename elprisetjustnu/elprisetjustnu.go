package elprisetjustnu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

// ErrNotPublished means the upstream has no price file for the requested day
// yet. Tomorrow's prices normally appear around 13:00 local time.
var ErrNotPublished = errors.New("prices not published")

type rawPrice struct {
	SEKPerKWh float64   `json:"SEK_per_kWh"`
	EURPerKWh float64   `json:"EUR_per_kWh"`
	EXR       float64   `json:"EXR"`
	TimeStart time.Time `json:"time_start"`
	TimeEnd   time.Time `json:"time_end"`
}

type ElPrisetJustNu struct {
	baseURL string
	client  *http.Client
}

func New(timeout time.Duration) ElPrisetJustNu {
	return ElPrisetJustNu{
		baseURL: "https://www.elprisetjustnu.se",
		client:  &http.Client{Timeout: timeout},
	}
}

// NewWithBaseURL is used by tests to point the fetcher at a local server.
func NewWithBaseURL(baseURL string, timeout time.Duration) ElPrisetJustNu {
	e := New(timeout)
	e.baseURL = baseURL
	return e
}

// FetchDay retrieves one day's quarter-hour prices for one area. Failures
// stay distinguishable: ErrNotPublished for a missing or empty day, wrapped
// errors for transport, status and decode problems.
func (e ElPrisetJustNu) FetchDay(ctx context.Context, date quarters.Date, area types.Area) ([]types.PriceRow, error) {
	url := fmt.Sprintf("%s/api/v1/prices/%d/%02d-%02d_%s.json",
		e.baseURL, date.Year, int(date.Month), date.Day, area)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no prices for %s %s: %w", date, area, ErrNotPublished)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rawPrices []rawPrice
	if err := json.NewDecoder(resp.Body).Decode(&rawPrices); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(rawPrices) == 0 {
		return nil, fmt.Errorf("empty price list for %s %s: %w", date, area, ErrNotPublished)
	}

	prices := make([]types.PriceRow, 0, len(rawPrices))
	for _, raw := range rawPrices {
		prices = append(prices, types.PriceRow{
			Start:     quarters.KeyOf(raw.TimeStart),
			SEKPerKWh: raw.SEKPerKWh,
			EURPerKWh: raw.EURPerKWh,
		})
	}

	return prices, nil
}
