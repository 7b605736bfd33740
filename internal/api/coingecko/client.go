package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "coinsight/internal/platform/http"
	"coinsight/models"
)

// Client fetches market snapshots from the CoinGecko markets endpoint.
// The core never retries or caches these calls; the platform client's
// retry budget is the only resilience layer.
type Client struct {
	apiKey     string
	baseURL    string
	vsCurrency string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new market data client.
type ClientOptions struct {
	BaseURL        string
	APIKey         string
	VsCurrency     string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new CoinGecko API client.
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if options.VsCurrency == "" {
		options.VsCurrency = "usd"
	}

	return &Client{
		apiKey:     options.APIKey,
		baseURL:    strings.TrimRight(options.BaseURL, "/"),
		vsCurrency: options.VsCurrency,
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
		}),
		logger: log.With().Str("component", "coingecko_client").Logger(),
	}
}

// marketRow is one row of the /coins/markets response.
type marketRow struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	CurrentPrice      float64 `json:"current_price"`
	High24h           float64 `json:"high_24h"`
	Low24h            float64 `json:"low_24h"`
	TotalVolume       float64 `json:"total_volume"`
	MarketCap         float64 `json:"market_cap"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	ATH               float64 `json:"ath"`
	ATHChangePct      float64 `json:"ath_change_percentage"`
	ATL               float64 `json:"atl"`
	ATLChangePct      float64 `json:"atl_change_percentage"`
	LastUpdated       string  `json:"last_updated"`
}

// FetchSnapshots fetches one snapshot per symbol in a single request.
// The result preserves the requested order; unknown symbols are skipped.
func (c *Client) FetchSnapshots(ctx context.Context, symbols []string) ([]*models.PriceSnapshot, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols requested")
	}

	endpoint := fmt.Sprintf("%s/coins/markets?vs_currency=%s&ids=%s",
		c.baseURL, url.QueryEscape(c.vsCurrency), url.QueryEscape(strings.Join(symbols, ",")))
	c.logger.Debug().Str("url", endpoint).Msg("Fetching snapshots")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var rows []marketRow
	if err := json.Unmarshal(body, &rows); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty data returned")
	}

	byID := make(map[string]*models.PriceSnapshot, len(rows))
	for _, row := range rows {
		byID[row.ID] = row.toSnapshot()
	}

	snaps := make([]*models.PriceSnapshot, 0, len(symbols))
	for _, sym := range symbols {
		if snap, ok := byID[sym]; ok {
			snaps = append(snaps, snap)
		} else {
			c.logger.Warn().Str("symbol", sym).Msg("Symbol missing from response")
		}
	}
	return snaps, nil
}

// FetchSnapshot fetches a single symbol's snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, symbol string) (*models.PriceSnapshot, error) {
	snaps, err := c.FetchSnapshots(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("no snapshot for %q", symbol)
	}
	return snaps[0], nil
}

func (r marketRow) toSnapshot() *models.PriceSnapshot {
	ts, err := time.Parse(time.RFC3339, r.LastUpdated)
	if err != nil {
		ts = time.Now().UTC()
	}
	return &models.PriceSnapshot{
		Symbol:       r.ID,
		Price:        r.CurrentPrice,
		High24h:      r.High24h,
		Low24h:       r.Low24h,
		Volume24h:    r.TotalVolume,
		MarketCap:    r.MarketCap,
		Change24h:    r.PriceChangePct24h,
		ATH:          r.ATH,
		ATL:          r.ATL,
		ATHChangePct: r.ATHChangePct,
		ATLChangePct: r.ATLChangePct,
		Timestamp:    ts,
	}
}
