package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"portfolio-tracker-go/internal/metrics"
	"portfolio-tracker-go/internal/models"
	"portfolio-tracker-go/internal/valuation"
)

const dateLayout = "2006-01-02 15:04"

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteTrades serializes the trades table as CSV.
func WriteTrades(w io.Writer, trades []models.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "symbol", "quantity", "price", "date"}); err != nil {
		return err
	}
	for _, t := range trades {
		row := []string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Symbol,
			formatFloat(t.Quantity),
			formatFloat(t.Price),
			t.Date.Format(dateLayout),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMetrics serializes the per-symbol metrics table as CSV.
func WriteMetrics(w io.Writer, ms []metrics.SymbolMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"symbol", "avg_price", "total_qty", "total_cost"}); err != nil {
		return err
	}
	for _, m := range ms {
		row := []string{
			m.Symbol,
			formatFloat(m.AvgPrice),
			formatFloat(m.TotalQty),
			formatFloat(m.TotalCost),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteValuedMetrics serializes the ROI-annotated metrics table as CSV.
// Unresolved prices and ROI values serialize as empty cells.
func WriteValuedMetrics(w io.Writer, rows []valuation.ValuedMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"symbol", "avg_price", "total_qty", "total_cost", "current_price", "roi_pct"}); err != nil {
		return err
	}
	for _, v := range rows {
		current, roi := "", ""
		if !math.IsNaN(v.CurrentPrice) {
			current = formatFloat(v.CurrentPrice)
			roi = formatFloat(v.ROIPct)
		}
		row := []string{
			v.Symbol,
			formatFloat(v.AvgPrice),
			formatFloat(v.TotalQty),
			formatFloat(v.TotalCost),
			current,
			roi,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Files writes trades.csv and metrics.csv under dir, stamped into fresh
// files so repeated exports never clobber each other mid-write.
func Files(dir string, trades []models.Trade, ms []metrics.SymbolMetrics) (tradesPath, metricsPath string, err error) {
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tradesPath = filepath.Join(dir, "trades.csv")
	metricsPath = filepath.Join(dir, "metrics.csv")

	if err = writeFileAtomic(tradesPath, func(w io.Writer) error {
		return WriteTrades(w, trades)
	}); err != nil {
		return "", "", err
	}
	if err = writeFileAtomic(metricsPath, func(w io.Writer) error {
		return WriteMetrics(w, ms)
	}); err != nil {
		return "", "", err
	}
	return tradesPath, metricsPath, nil
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp := fmt.Sprintf("%s.%d.tmp", path, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
