package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/ingest"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/platform/openlibrary"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type env struct {
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Fill the catalog collection with books",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			e.cfg, e.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}
	root.AddCommand(newFixtureCmd(e), newOpenLibraryCmd(e))
	return root
}

func newFixtureCmd(e *env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Import books from a YAML fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := ingest.LoadFixture(file)
			if err != nil {
				return err
			}
			return e.withService(cmd.Context(), func(ctx context.Context, svc *ingest.Service) (ingest.Result, error) {
				return svc.Books(ctx, books)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "testdata/books.yaml", "path to the YAML fixture")
	return cmd
}

func newOpenLibraryCmd(e *env) *cobra.Command {
	var (
		subject    string
		limit      int
		rps        int
		maxRetries int
	)
	cmd := &cobra.Command{
		Use:   "openlibrary",
		Short: "Import books of an Open Library subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := openlibrary.NewClient("bookshelf-seed/1.0", rps, maxRetries)
			return e.withService(cmd.Context(), func(ctx context.Context, svc *ingest.Service) (ingest.Result, error) {
				return svc.Subject(ctx, client, subject, limit)
			})
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "science_fiction", "Open Library subject to import")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of search hits")
	cmd.Flags().IntVar(&rps, "rps", 2, "requests per second sent to Open Library")
	cmd.Flags().IntVar(&maxRetries, "retries", 3, "retries on 429 and 5xx responses")
	return cmd
}

func (e *env) withService(parent context.Context, fn func(context.Context, *ingest.Service) (ingest.Result, error)) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := catalog.Open(ctx, e.cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := ingest.NewService(repo, e.cfg.Catalog.Collection, e.logger.Named("ingest"))
	res, err := fn(ctx, svc)
	if err != nil {
		return fmt.Errorf("seed failed after %d upserts: %w", res.Upserted, err)
	}
	e.logger.Info("seed complete",
		zap.String("backend", e.cfg.Catalog.Backend),
		zap.Int("fetched", res.Fetched),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
	)
	return nil
}
