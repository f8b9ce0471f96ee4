package pricing

import (
	"context"
	"strings"
	"time"

	"portfolio-tracker-go/internal/config"

	"go.uber.org/zap"
)

// CryptoSource returns the most recent trade price of a crypto asset
// against the configured quote currency.
type CryptoSource interface {
	LastPrice(ctx context.Context, base string) (float64, error)
}

// EquitySource returns the most recent daily close of an equity ticker.
type EquitySource interface {
	DailyClose(ctx context.Context, ticker string) (float64, error)
}

// cryptoSymbols is the fixed set of recognized crypto asset codes. Anything
// else is treated as an equity ticker.
var cryptoSymbols = map[string]struct{}{
	"BTC": {},
	"ETH": {},
	"XRP": {},
	"LTC": {},
	"ADA": {},
}

// Resolver routes a symbol to the crypto or the equities price source.
// Every failure mode degrades to an unresolved price: network errors,
// unknown symbols and malformed responses are logged, never returned.
type Resolver struct {
	crypto   CryptoSource
	equities EquitySource
	suffix   string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(cfg *config.Pricing, crypto CryptoSource, equities EquitySource, logger *zap.Logger) *Resolver {
	return &Resolver{
		crypto:   crypto,
		equities: equities,
		suffix:   cfg.RegionalSuffix,
		timeout:  time.Duration(cfg.LookupTimeoutSeconds) * time.Second,
		logger:   logger,
	}
}

// IsCrypto reports whether the (already normalized) symbol is routed to the
// crypto price source.
func IsCrypto(symbol string) bool {
	_, ok := cryptoSymbols[symbol]
	return ok
}

// Resolve returns the current market price for symbol, and whether one could
// be obtained. Crypto symbols query the crypto source; all other symbols
// query the equities source, and when that yields nothing and the ticker
// carries no exchange suffix yet, the lookup is retried exactly once with
// the configured regional suffix appended.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if IsCrypto(symbol) {
		price, err := r.crypto.LastPrice(ctx, symbol)
		if err != nil {
			r.logger.Warn("Crypto price lookup failed", zap.String("symbol", symbol), zap.Error(err))
			return 0, false
		}
		return price, true
	}

	price, err := r.equities.DailyClose(ctx, symbol)
	if err == nil {
		return price, true
	}
	r.logger.Debug("Equity price lookup failed", zap.String("ticker", symbol), zap.Error(err))

	if strings.Contains(symbol, ".") {
		// Already carries an exchange suffix, nothing more to try.
		return 0, false
	}

	local := symbol + r.suffix
	price, err = r.equities.DailyClose(ctx, local)
	if err != nil {
		r.logger.Warn("Equity price unresolved", zap.String("ticker", symbol), zap.String("fallback", local), zap.Error(err))
		return 0, false
	}
	return price, true
}
