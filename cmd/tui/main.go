package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"portfolio-tracker-go/internal/alerts"
	"portfolio-tracker-go/internal/config"
	"portfolio-tracker-go/internal/database"
	"portfolio-tracker-go/internal/export"
	"portfolio-tracker-go/internal/logger"
	"portfolio-tracker-go/internal/portfolio"
	"portfolio-tracker-go/internal/pricing"
	"portfolio-tracker-go/internal/store"
	"portfolio-tracker-go/internal/valuation"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02 15:04"

// The interactive shell: a menu loop over the same core operations the CLI
// and the web dashboard expose.
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger("error", cfg.Logger.Format) // keep the menu quiet
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	ts := store.NewTradeStore(db, log)
	resolver := pricing.NewResolver(
		&cfg.Pricing,
		pricing.NewBinanceClient(&cfg.Pricing, log),
		pricing.NewYahooClient(log),
		log,
	)
	vs := valuation.NewService(ts, resolver, cfg.Pricing.Workers, log)
	ae := alerts.NewEngine(vs, log)
	svc := portfolio.NewService(ts, vs, ae, log)

	ui := &menu{svc: svc, cfg: cfg, in: bufio.NewScanner(os.Stdin)}
	ui.run()
}

type menu struct {
	svc *portfolio.Service
	cfg config.Config
	in  *bufio.Scanner
}

func (m *menu) run() {
	for {
		fmt.Println("\n=== Portfolio Tracker ===")
		fmt.Println("1. List trades")
		fmt.Println("2. Add trade")
		fmt.Println("3. Delete trade")
		fmt.Println("4. Metrics")
		fmt.Println("5. Valuation (live prices)")
		fmt.Println("6. Set alert and check")
		fmt.Println("7. Export to CSV")
		fmt.Println("8. Quit")

		switch m.prompt("Choose an option (1-8): ") {
		case "1":
			m.listTrades()
		case "2":
			m.addTrade()
		case "3":
			m.deleteTrade()
		case "4":
			m.showMetrics()
		case "5":
			m.showValuation()
		case "6":
			m.alert()
		case "7":
			m.exportCSV()
		case "8":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid option, try again.")
		}
	}
}

func (m *menu) prompt(label string) string {
	fmt.Print(label)
	if !m.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(m.in.Text())
}

func (m *menu) listTrades() {
	trades, err := m.svc.ListTrades("")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(trades) == 0 {
		fmt.Println("No trades recorded.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYMBOL\tQUANTITY\tPRICE\tDATE")
	for _, t := range trades {
		fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%s\n", t.ID, t.Symbol, t.Quantity, t.Price, t.Date.Format(dateLayout))
	}
	w.Flush()
}

func (m *menu) addTrade() {
	symbol := m.prompt("Symbol (e.g. BTC, SAN): ")
	qty, err := strconv.ParseFloat(m.prompt("Quantity: "), 64)
	if err != nil {
		fmt.Println("Invalid quantity.")
		return
	}
	price, err := strconv.ParseFloat(m.prompt("Unit price: "), 64)
	if err != nil {
		fmt.Println("Invalid price.")
		return
	}

	var date time.Time
	if s := m.prompt("Date (YYYY-MM-DD HH:MM) [enter for now]: "); s != "" {
		date, err = time.Parse(dateLayout, s)
		if err != nil {
			fmt.Println("Invalid date.")
			return
		}
	}

	trade, err := m.svc.CreateTrade(symbol, qty, price, date)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Recorded trade #%d: %s qty=%v price=%v\n", trade.ID, trade.Symbol, trade.Quantity, trade.Price)
}

func (m *menu) deleteTrade() {
	id, err := strconv.ParseUint(m.prompt("Trade id: "), 10, 32)
	if err != nil {
		fmt.Println("Invalid id.")
		return
	}
	removed, err := m.svc.DeleteTrade(uint(id))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if removed {
		fmt.Printf("Deleted trade %d.\n", id)
	} else {
		fmt.Printf("No trade with id %d.\n", id)
	}
}

func (m *menu) showMetrics() {
	ms, err := m.svc.ComputeMetrics()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(ms) == 0 {
		fmt.Println("No trades recorded.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tAVG PRICE\tTOTAL QTY\tTOTAL COST")
	for _, sm := range ms {
		fmt.Fprintf(w, "%s\t%.4f\t%v\t%.2f\n", sm.Symbol, sm.AvgPrice, sm.TotalQty, sm.TotalCost)
	}
	w.Flush()
}

func (m *menu) showValuation() {
	rows, err := m.svc.ComputeValuedMetrics(context.Background())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(rows) == 0 {
		fmt.Println("No trades recorded.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tAVG PRICE\tCURRENT\tROI %\tTOTAL QTY\tTOTAL COST")
	for _, v := range rows {
		current, roi := "-", "-"
		if v.Resolved() {
			current = fmt.Sprintf("%.4f", v.CurrentPrice)
			roi = fmt.Sprintf("%+.2f", v.ROIPct)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%s\t%s\t%v\t%.2f\n", v.Symbol, v.AvgPrice, current, roi, v.TotalQty, v.TotalCost)
	}
	w.Flush()
}

func (m *menu) alert() {
	symbol := m.prompt("Alert symbol: ")
	threshold, err := strconv.ParseFloat(m.prompt("Threshold: "), 64)
	if err != nil || threshold <= 0 {
		fmt.Println("Invalid threshold.")
		return
	}
	m.svc.SetPriceAlert(symbol, threshold)

	messages, err := m.svc.CheckAlerts(context.Background())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(messages) == 0 {
		fmt.Println("No alerts triggered.")
		return
	}
	for _, msg := range messages {
		fmt.Println("ALERT:", msg)
	}
}

func (m *menu) exportCSV() {
	trades, err := m.svc.ListTrades("")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	ms, err := m.svc.ComputeMetrics()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	tradesPath, metricsPath, err := export.Files(m.cfg.Export.Dir, trades, ms)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Exported:", tradesPath, metricsPath)
}
