// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/poiesic/newsmaint/ai"
	"github.com/poiesic/newsmaint/ai/openai"
	"github.com/poiesic/newsmaint/config"
	"github.com/poiesic/newsmaint/jobs"
	"github.com/poiesic/newsmaint/store/supabase"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "newsmaint",
		Usage: "Maintenance utilities for the latest_news article store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "embed-backfill",
				Usage:  "Compute embeddings for articles that have a summary but no embedding",
				Action: embedBackfillCommand,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Pause between items (rate-limit shim)",
						Value: jobs.DefaultDelay,
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: ai.DefaultEmbeddingModel,
					},
				},
			},
			{
				Name:      "url-repair",
				Usage:     "Replace Google redirector URLs with their destinations and fix the source",
				ArgsUsage: "[batch_size]",
				Action:    urlRepairCommand,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Pause between items (rate-limit shim)",
						Value: jobs.DefaultDelay,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Classify and report only, write nothing",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func embedBackfillCommand(c *cli.Context) error {
	ctx, stop := signalContext(c.Context)
	defer stop()

	cfg, err := config.LoadEmbed()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(ai.NewConfig(
		ai.WithAPIKey(cfg.OpenAIKey),
		ai.WithModel(c.String("embedding-model")),
	))
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	st := supabase.New(cfg.SupabaseURL, cfg.ServiceKey, cfg.Table)
	job := jobs.NewEmbedBackfill(st, embedder)
	runner := jobs.NewRunner(c.Duration("delay"), os.Stdout)

	if _, err := runner.Run(ctx, job); err != nil {
		return fmt.Errorf("embed-backfill failed: %w", err)
	}
	return nil
}

func urlRepairCommand(c *cli.Context) error {
	ctx, stop := signalContext(c.Context)
	defer stop()

	batchSize, err := parseBatchSize(c.Args().First())
	if err != nil {
		return err
	}

	cfg, err := config.LoadStore()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	st := supabase.New(cfg.SupabaseURL, cfg.ServiceKey, cfg.Table)
	job := jobs.NewURLRepair(st, jobs.NewRedirectResolver(), batchSize, c.Bool("dry-run"))
	runner := jobs.NewRunner(c.Duration("delay"), os.Stdout)

	if _, err := runner.Run(ctx, job); err != nil {
		return fmt.Errorf("url-repair failed: %w", err)
	}
	return nil
}

// parseBatchSize parses the legacy positional batch_size argument.
// Empty means the default; anything else must be a positive integer.
func parseBatchSize(arg string) (int, error) {
	if arg == "" {
		return supabase.DefaultPageSize, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("batch_size must be a positive integer, got %q", arg)
	}
	return n, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
