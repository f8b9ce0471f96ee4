package pricing

import (
	"context"
	"fmt"
	"strconv"

	"portfolio-tracker-go/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const binanceBaseURL = "https://api.binance.com/api/v3"

// BinanceClient fetches the most recent trade price of a crypto pair from
// the Binance public REST API.
type BinanceClient struct {
	client  *resty.Client
	quote   string
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewBinanceClient creates a new Binance REST API client. Only public market
// data endpoints are used, so no API key is required.
func NewBinanceClient(cfg *config.Pricing, logger *zap.Logger) *BinanceClient {
	return &BinanceClient{
		client:  resty.New().SetBaseURL(binanceBaseURL),
		quote:   cfg.CryptoQuote,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
	}
}

// tickerPrice represents the response for a single ticker price.
type tickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// LastPrice returns the latest trade price for the pair base/quote,
// e.g. base "BTC" with quote "USDT" queries the BTCUSDT ticker.
func (c *BinanceClient) LastPrice(ctx context.Context, base string) (float64, error) {
	pair := base + c.quote

	req := c.client.R().
		SetQueryParam("symbol", pair).
		SetResult(&tickerPrice{}).
		SetHeader("Content-Type", "application/json")

	resp, err := doRequest(ctx, c.logger, c.limiter, req, "GET", "/ticker/price")
	if err != nil {
		return 0, fmt.Errorf("failed to get ticker price for %s: %w", pair, err)
	}

	result := resp.Result().(*tickerPrice)
	price, err := strconv.ParseFloat(result.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed ticker price %q for %s: %w", result.Price, pair, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("non-positive ticker price %v for %s", price, pair)
	}
	return price, nil
}
