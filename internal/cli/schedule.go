package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xraph/revrec"
	"github.com/xraph/revrec/extract"
	"github.com/xraph/revrec/fx"
	"github.com/xraph/revrec/internal/config"
	"github.com/xraph/revrec/internal/tui"
	"github.com/xraph/revrec/invoice"
	"github.com/xraph/revrec/schedule"
	"github.com/xraph/revrec/store"
)

func newScheduleCmd() *cobra.Command {
	var (
		invoicesPath string
		fromStripe   bool
		ratesPath    string
		asOfRaw      string
		pairRaw      string
		sinkName     string
		asJSON       bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate a revenue schedule from extracted invoices",
		Long:  "Reads raw platform invoices and a dated rate table, expands every paid invoice into per-day entries, and reports recognised and deferred totals as of the reference date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			asOf, err := civil.ParseDate(asOfRaw)
			if err != nil {
				return fmt.Errorf("invalid --as-of %q: %w", asOfRaw, err)
			}
			pair, err := parsePair(pairRaw)
			if err != nil {
				return err
			}

			var invoices []*invoice.Invoice
			switch {
			case fromStripe:
				invoices, err = fetchInvoices(cmd.Context(), cfg)
			case invoicesPath != "":
				invoices, err = loadInvoices(invoicesPath)
			default:
				return fmt.Errorf("either --invoices or --from-stripe is required")
			}
			if err != nil {
				return err
			}
			rates, err := loadRates(ratesPath, pair)
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			engine := revrec.New(rates,
				revrec.WithLogger(logger),
				revrec.WithBulkWorkers(cfg.Workers),
			)

			entries, err := engine.ScheduleAll(cmd.Context(), invoices, asOf, pair)
			var merr *revrec.MultiError
			if err != nil && !errors.As(err, &merr) {
				return err
			}

			report := engine.Summarize(entries)
			if asJSON {
				out, marshalErr := json.MarshalIndent(report, "", "  ")
				if marshalErr != nil {
					return marshalErr
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report, pair.To))
			}

			if sinkName != "" {
				if err := persistRun(cmd.Context(), sinkName, cfg, asOf, pair, len(invoices), entries); err != nil {
					return err
				}
			}

			if merr != nil {
				for _, e := range merr.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", e)
				}
				return fmt.Errorf("%d invoices failed", len(merr.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&invoicesPath, "invoices", "", "path to extracted invoices JSON")
	cmd.Flags().BoolVar(&fromStripe, "from-stripe", false, "fetch invoices from the platform instead of a file")
	cmd.Flags().StringVar(&ratesPath, "rates", "", "path to dated rate table JSON (required)")
	cmd.Flags().StringVar(&asOfRaw, "as-of", "", "reference date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&pairRaw, "pair", "", "currency pair, e.g. usd/gbp (required)")
	cmd.Flags().StringVar(&sinkName, "sink", "", "persist the run to a sink: memory, gcs, postgres, or mongo")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("rates") //nolint:errcheck
	_ = cmd.MarkFlagRequired("as-of") //nolint:errcheck
	_ = cmd.MarkFlagRequired("pair")  //nolint:errcheck

	return cmd
}

// fetchInvoices drains the platform's invoices resource directly.
func fetchInvoices(ctx context.Context, cfg *config.Config) ([]*invoice.Invoice, error) {
	if cfg.StripeAPIKey == "" {
		return nil, fmt.Errorf("STRIPE_API_KEY is not set")
	}

	fetcher := extract.NewStripeFetcher(cfg.StripeAPIKey)
	records, err := extract.All(ctx, fetcher, extract.Descriptor{
		Resource: "invoices",
		Expand:   []string{"data.lines"},
	})
	if err != nil {
		return nil, err
	}
	return extract.MapRecords(records)
}

// persistRun lands the finished run in the chosen sink.
func persistRun(ctx context.Context, sinkName string, cfg *config.Config, asOf civil.Date, pair fx.Pair, invoiceCount int, entries []*schedule.Entry) error {
	sink, err := openSink(ctx, sinkName, cfg)
	if err != nil {
		return err
	}
	defer sink.Close() //nolint:errcheck

	run := schedule.NewRun(asOf, pair, invoiceCount, entries)
	return sink.Put(ctx, store.NewObject("schedules", run.CreatedAt, run))
}

// loadInvoices reads a JSON array of raw platform invoices and maps them
// into the recognition model.
func loadInvoices(path string) ([]*invoice.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read invoices: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse invoices: %w", err)
	}

	records := make([]extract.Record, 0, len(raw))
	for _, item := range raw {
		var envelope struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(item, &envelope); err != nil {
			return nil, fmt.Errorf("parse invoices: %w", err)
		}
		records = append(records, extract.Record{ID: envelope.ID, Data: item})
	}

	return extract.MapRecords(records)
}

// rateRow is one line of the dated rate table file.
type rateRow struct {
	Date civil.Date      `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// loadRates reads a JSON array of dated quotes into a rate table for the
// given pair.
func loadRates(path string, pair fx.Pair) (*fx.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates: %w", err)
	}

	var rows []rateRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse rates: %w", err)
	}

	table := fx.NewTable()
	for _, row := range rows {
		table.AddQuote(pair, row.Date, row.Rate)
	}
	return table, nil
}

// parsePair parses "usd/gbp" into a currency pair.
func parsePair(raw string) (fx.Pair, error) {
	from, to, ok := strings.Cut(raw, "/")
	if !ok || from == "" || to == "" {
		return fx.Pair{}, fmt.Errorf("invalid --pair %q, want from/to like usd/gbp", raw)
	}
	return fx.NewPair(from, to), nil
}
