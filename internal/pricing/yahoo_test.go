package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func setupYahooServer(handler http.Handler) (*YahooClient, *httptest.Server) {
	server := httptest.NewServer(handler)

	yc := &YahooClient{
		client:  resty.New().SetBaseURL(server.URL),
		logger:  zap.NewNop(),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	return yc, server
}

func TestDailyClose(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/SAN.MC", r.URL.Path)
			assert.Equal(t, "1d", r.URL.Query().Get("range"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"SAN.MC","regularMarketPrice":4.52}}],"error":null}}`))
		})

		yc, server := setupYahooServer(handler)
		defer server.Close()

		// Act
		price, err := yc.DailyClose(context.Background(), "SAN.MC")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 4.52, price)
	})

	t.Run("ChartError", func(t *testing.T) {
		// Arrange: the chart API reports unknown tickers inside the payload.
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		})

		yc, server := setupYahooServer(handler)
		defer server.Close()

		// Act
		price, err := yc.DailyClose(context.Background(), "NOPE")

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No data found")
		assert.Zero(t, price)
	})

	t.Run("EmptyResult", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
		})

		yc, server := setupYahooServer(handler)
		defer server.Close()

		// Act
		price, err := yc.DailyClose(context.Background(), "AAA")

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no chart data")
		assert.Zero(t, price)
	})

	t.Run("ServerError", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		yc, server := setupYahooServer(handler)
		defer server.Close()

		// Act
		_, err := yc.DailyClose(context.Background(), "AAA")

		// Assert
		assert.Error(t, err)
	})
}
