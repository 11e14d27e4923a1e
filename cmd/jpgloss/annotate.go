package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/jpgloss/internal/app"
	"github.com/heartmarshall/jpgloss/internal/config"
	"github.com/heartmarshall/jpgloss/internal/service/gloss"
	"github.com/heartmarshall/jpgloss/pkg/ctxutil"
)

const defaultPurgeAge = 30 * 24 * time.Hour

var errUsage = errors.New("usage: jpgloss [flags] <file>")

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	overridden := false
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
		overridden = true
	}
	if c.IsSet("filter") {
		cfg.Filter.Mode = c.String("filter")
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("flags: %w", err)
		}
	}
	return cfg, nil
}

// build loads config, sets up logging and wires the pipeline.
func build(c *cli.Context, progress gloss.ProgressFunc) (*app.Pipeline, *slog.Logger, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cfg.Log)

	p, err := app.Build(c.Context, cfg, logger, progress)
	if err != nil {
		return nil, nil, err
	}
	return p, logger, nil
}

func annotateFile(c *cli.Context) error {
	if c.NArg() != 1 {
		return errUsage
	}
	path := c.Args().First()

	// Read the whole input before any output so failures leave stdout empty.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("read input: %s is not valid UTF-8", path)
	}

	var bar *progressBar
	var progress gloss.ProgressFunc
	if c.Bool("progress") {
		bar = newProgressBar(c.App.ErrWriter)
		progress = bar.Update
	}

	p, logger, err := build(c, progress)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx := newRunContext(c.Context, path)
	logger.DebugContext(ctx, "annotating file",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
		slog.String("version", app.Version),
	)

	_, err = p.Run(ctx, string(data), c.App.Writer)
	bar.Stop()
	return err
}

func purgeCache(c *cli.Context) error {
	p, logger, err := build(c, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	age := c.Duration("older-than")
	n, err := p.PurgeCache(c.Context, age)
	if err != nil {
		return err
	}

	logger.InfoContext(c.Context, "cache purged", slog.Int64("deleted", n), slog.Duration("older_than", age))
	_, err = fmt.Fprintf(c.App.Writer, "purged %d cached lookups\n", n)
	return err
}

func newRunContext(ctx context.Context, source string) context.Context {
	ctx = ctxutil.WithRunID(ctx, uuid.New())
	return ctxutil.WithSource(ctx, source)
}
