// Command dashboard runs the survey data pipeline end to end: obtain the raw
// export (cache or remote store), normalize it into the clean table and build
// the aggregated view for every selectable dimension. The interactive UI
// renders these views; this binary is the in-process backend it feeds on.
package main

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"salarydash/internal/acquisition"
	"salarydash/internal/analytics"
	"salarydash/internal/config"
	"salarydash/internal/dataprocessing"
	"salarydash/internal/errors"
	"salarydash/internal/infrastructure"
)

func main() {
	if err := run(); err != nil {
		slog.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}

	// A missing remote configuration is fine as long as the cache holds an
	// export; acquisition reports DataUnavailable otherwise.
	var fetcher acquisition.Fetcher
	if cfg.Remote.HasCredentials() {
		objectFetcher, err := acquisition.NewObjectStoreFetcher(cfg.Remote, logger)
		if err != nil {
			return err
		}
		fetcher = objectFetcher
	} else {
		logger.InfoContext(ctx, "remote store credentials not set, cache-only mode")
	}

	svc := acquisition.NewService(fetcher, logger)
	path, err := svc.ObtainRawFile(ctx, cfg.Cache.Dir)
	if err != nil {
		return err
	}

	normalizer := dataprocessing.NewNormalizer(logger, dataprocessing.DefaultNormalizerConfig())
	table, err := normalizer.Normalize(ctx, path)
	if err != nil {
		if errors.IsMalformedInput(err) {
			logger.ErrorContext(ctx, "survey export is malformed, refusing to render a partial view")
		}
		return err
	}

	aggregator := analytics.NewAggregator(logger, analytics.DefaultAggregatorConfig())

	labels := make([]string, 0, len(analytics.DimensionLabels))
	for label := range analytics.DimensionLabels {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		field := analytics.DimensionLabels[label]
		view, err := aggregator.BuildView(ctx, table, field)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "view ready",
			slog.String("dimension", label),
			slog.Int("categories", len(view.Categories)))
	}

	logger.InfoContext(ctx, "pipeline complete",
		slog.Int("clean_rows", table.Len()))

	return nil
}
