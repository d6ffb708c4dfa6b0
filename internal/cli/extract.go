package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xraph/revrec/extract"
	"github.com/xraph/revrec/internal/config"
	"github.com/xraph/revrec/internal/tui"
	"github.com/xraph/revrec/store"
	"github.com/xraph/revrec/store/gcs"
	"github.com/xraph/revrec/store/memory"
	"github.com/xraph/revrec/store/mongo"
	"github.com/xraph/revrec/store/postgres"
)

func newExtractCmd() *cobra.Command {
	var (
		sinkName      string
		resourcesPath string
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Pull billing resources from the platform into a sink",
		Long:  "Drains every configured platform resource page by page and lands each one in the chosen sink as a timestamped JSON object.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.StripeAPIKey == "" {
				return fmt.Errorf("STRIPE_API_KEY is not set")
			}

			descriptors := extract.DefaultDescriptors()
			if resourcesPath != "" {
				descriptors, err = extract.LoadDescriptors(resourcesPath)
				if err != nil {
					return err
				}
			}

			sink, err := openSink(cmd.Context(), sinkName, cfg)
			if err != nil {
				return err
			}
			defer sink.Close() //nolint:errcheck

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			runner := extract.NewRunner(
				extract.NewStripeFetcher(cfg.StripeAPIKey),
				sink,
				extract.WithLogger(logger),
				extract.WithDescriptors(descriptors),
			)

			results := runner.Run(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderExtractResults(results))

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d resources failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sinkName, "sink", "memory", "sink backend: memory, gcs, postgres, or mongo")
	cmd.Flags().StringVar(&resourcesPath, "resources", "", "YAML file overriding the default resource set")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}

// openSink builds the configured sink backend.
func openSink(ctx context.Context, name string, cfg *config.Config) (store.Sink, error) {
	switch name {
	case "memory":
		return memory.New(), nil

	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET_NAME is not set")
		}
		return gcs.New(ctx, cfg.GCSBucket)

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
		s, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close() //nolint:errcheck
			return nil, err
		}
		return s, nil

	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is not set")
		}
		return mongo.New(ctx, mongo.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})

	default:
		return nil, fmt.Errorf("unknown sink %q", name)
	}
}
