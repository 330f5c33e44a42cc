package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mantlenetworkio/mantle-tutorial-go/api"
	"github.com/mantlenetworkio/mantle-tutorial-go/database"
	"github.com/mantlenetworkio/mantle-tutorial-go/indexer"
	"github.com/mantlenetworkio/mantle-tutorial-go/metrics"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "index bridge transfers into MongoDB and serve them over HTTP",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "l1-start-block", EnvVars: []string{"L1_START_BLOCK"}, Usage: "first L1 block to index"},
			&cli.Uint64Flag{Name: "l2-start-block", EnvVars: []string{"L2_START_BLOCK"}, Usage: "first L2 block to index"},
			&cli.Uint64Flag{Name: "min-batch-size", EnvVars: []string{"MIN_BATCH_SIZE"}, Usage: "blocks to wait for before indexing a batch"},
			&cli.Uint64Flag{Name: "max-batch-size", EnvVars: []string{"MAX_BATCH_SIZE"}, Value: indexer.DefaultMaxBatchSize, Usage: "largest batch while catching up"},
			&cli.DurationFlag{Name: "fetch-interval", EnvVars: []string{"FETCH_INTERVAL"}, Value: indexer.DefaultFetchInterval, Usage: "wait between head checks"},
			&cli.DurationFlag{Name: "status-check-interval", EnvVars: []string{"STATUS_CHECK_INTERVAL"}, Value: indexer.DefaultStatusCheckInterval, Usage: "wait between status refreshes"},
			&cli.BoolFlag{Name: "erc721", Usage: "also index ERC721 bridge transfers"},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	logger := slog.Default()
	m := metrics.NewMetrics()

	cfg, env, closeAll, err := setup(c, m)
	if err != nil {
		return err
	}
	defer closeAll()

	if cfg.DatabaseURI == "" {
		return fmt.Errorf("database not configured (--database-uri / DATABASE_URI)")
	}
	db, err := database.NewDatabase(c.Context, database.DatabaseOpts{
		URI:          cfg.DatabaseURI,
		DatabaseName: cfg.DatabaseName,
		Logger:       logger.With("component", "database"),
	})
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	if err := db.CreateIndexes(c.Context); err != nil {
		return fmt.Errorf("failed to create database indexes: %w", err)
	}

	idx, err := indexer.NewIndexer(indexer.IndexerOpts{
		Messenger:           env.Messenger,
		Store:               db,
		Metrics:             m,
		Logger:              logger,
		EthereumStartBlock:  c.Uint64("l1-start-block"),
		MantleStartBlock:    c.Uint64("l2-start-block"),
		MinBatchSize:        c.Uint64("min-batch-size"),
		MaxBatchSize:        c.Uint64("max-batch-size"),
		FetchInterval:       c.Duration("fetch-interval"),
		StatusCheckInterval: c.Duration("status-check-interval"),
		IncludeERC721:       c.Bool("erc721"),
	})
	if err != nil {
		return err
	}

	server := api.NewServer(api.ServerOpts{
		Logger:  logger.With("component", "api-server"),
		Store:   db,
		Status:  env.Messenger,
		Metrics: m,
		Port:    cfg.APIPort,
	})

	g, ctx := errgroup.WithContext(c.Context)
	g.Go(func() error { return idx.Run(ctx) })
	g.Go(func() error { return server.Start(ctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Shut down gracefully")
	return nil
}
