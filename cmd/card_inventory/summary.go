package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/card_inventory_app/internal/core/services"
	"github.com/SscSPs/card_inventory_app/internal/platform/config"
	"github.com/SscSPs/card_inventory_app/internal/utils"
	"github.com/SscSPs/card_inventory_app/pkg/storage"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	bucket string
	raw    bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display inventory totals and spend/profit over time" }
func (*summaryCmd) Usage() string {
	return `card_inventory summary [-bucket month|day] [-raw]

  Reads the configured record store and prints totals, the sold/unsold split
  and a spend and profit table.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bucket, "bucket", string(domain.BucketMonth), "Time bucket for the table (month, day)")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bucket := domain.Bucket(c.bucket)
	if !bucket.Valid() {
		fmt.Fprintf(os.Stderr, "Error: unknown bucket %q\n", c.bucket)
		return subcommands.ExitUsageError
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	// Keep the CLI output clean; only problems are logged.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	store, err := storage.NewRecordStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening record store: %v\n", err)
		return subcommands.ExitFailure
	}
	container := services.NewServiceContainer(cfg, store)

	snapshot, err := container.Ledger.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading inventory: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := summaryMarkdown(ctx, snapshot, container.Metrics, bucket, cfg.CurrencyCode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building summary: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	if err := printMarkdown(os.Stdout, md); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering summary: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// summaryMarkdown renders totals, the status split and a per-bucket table of
// spend and profit, oldest bucket first.
func summaryMarkdown(ctx context.Context, snapshot domain.StoreSnapshot, metricsSvc portssvc.MetricsSvc, bucket domain.Bucket, currencyCode string) (string, error) {
	spend, err := metricsSvc.TimeSeries(ctx, snapshot, bucket, domain.MetricSpend)
	if err != nil {
		return "", err
	}
	profit, err := metricsSvc.TimeSeries(ctx, snapshot, bucket, domain.MetricProfit)
	if err != nil {
		return "", err
	}

	totals := metricsSvc.Totals(snapshot)
	split := metricsSvc.StatusSplit(snapshot)
	money := func(p *domain.SeriesPoint) string {
		if p == nil {
			return ""
		}
		return utils.FormatCurrency(p.Value, currencyCode)
	}

	var b strings.Builder
	b.WriteString("# Card Inventory\n\n")
	fmt.Fprintf(&b, "_As of %s_\n\n", snapshot.LoadedAt().Format("2006-01-02 15:04"))

	b.WriteString("| Spent | Proceeds | Profit |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n",
		utils.FormatCurrency(totals.Spent, currencyCode),
		utils.FormatCurrency(totals.Proceeds, currencyCode),
		utils.FormatCurrency(totals.Profit, currencyCode))

	fmt.Fprintf(&b, "**In inventory:** %d  \n**Sold:** %d\n\n", split.InInventory, split.Sold)

	rows := mergeSeries(spend.Points, profit.Points)
	if len(rows) == 0 {
		b.WriteString("_No dated records._\n")
		return b.String(), nil
	}

	heading := "Month"
	if bucket == domain.BucketDay {
		heading = "Day"
	}
	fmt.Fprintf(&b, "## By %s\n\n", strings.ToLower(heading))
	fmt.Fprintf(&b, "| %s | Spend | Profit |\n|---|---:|---:|\n", heading)
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", r.label, money(r.spend), money(r.profit))
	}
	if n := spend.Excluded + profit.Excluded; n > 0 {
		fmt.Fprintf(&b, "\n_%d record(s) left out because of an unreadable date._\n", n)
	}
	return b.String(), nil
}

type summaryRow struct {
	label  string
	spend  *domain.SeriesPoint
	profit *domain.SeriesPoint
}

// mergeSeries joins two chronologically sorted series on their bucket key.
func mergeSeries(spend, profit []domain.SeriesPoint) []summaryRow {
	var rows []summaryRow
	i, j := 0, 0
	for i < len(spend) || j < len(profit) {
		switch {
		case j >= len(profit) || (i < len(spend) && spend[i].Key.Before(profit[j].Key)):
			rows = append(rows, summaryRow{label: spend[i].Label, spend: &spend[i]})
			i++
		case i >= len(spend) || profit[j].Key.Before(spend[i].Key):
			rows = append(rows, summaryRow{label: profit[j].Label, profit: &profit[j]})
			j++
		default:
			rows = append(rows, summaryRow{label: spend[i].Label, spend: &spend[i], profit: &profit[j]})
			i++
			j++
		}
	}
	return rows
}

func printMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
