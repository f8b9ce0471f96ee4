package pricing

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooClient fetches the most recent daily closing price of an equity
// ticker from the Yahoo Finance chart API.
type YahooClient struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// NewYahooClient creates a new Yahoo Finance chart API client.
func NewYahooClient(logger *zap.Logger) *YahooClient {
	return &YahooClient{
		client: resty.New().SetBaseURL(yahooBaseURL),
		logger: logger,
		// Yahoo throttles unauthenticated clients aggressively.
		limiter: rate.NewLimiter(rate.Limit(5), 2),
	}
}

// chartResponse is the subset of the chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyClose returns the most recent daily close for the given ticker.
func (c *YahooClient) DailyClose(ctx context.Context, ticker string) (float64, error) {
	req := c.client.R().
		SetQueryParams(map[string]string{
			"range":    "1d",
			"interval": "1d",
		}).
		SetResult(&chartResponse{}).
		SetHeader("Content-Type", "application/json")

	resp, err := doRequest(ctx, c.logger, c.limiter, req, "GET", "/"+ticker)
	if err != nil {
		return 0, fmt.Errorf("failed to get daily close for %s: %w", ticker, err)
	}

	result := resp.Result().(*chartResponse)
	if result.Chart.Error != nil {
		return 0, fmt.Errorf("chart API error for %s: %s", ticker, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return 0, fmt.Errorf("no chart data for %s", ticker)
	}

	price := result.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("no usable close price for %s", ticker)
	}
	return price, nil
}
