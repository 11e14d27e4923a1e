// Command jpgloss annotates Japanese text with English meanings.
//
// Usage:
//
//	jpgloss [--config path] [--format text|html|json] [--filter kanji|japanese] [--progress] <file>
//	jpgloss repl
//	jpgloss cache purge [--older-than 720h]
//	jpgloss version
//
// The annotated text is written to stdout; logs go to stderr.
// Exit codes: 0 = success, 1 = input or config error. Lookup failures do
// not change the exit code.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/jpgloss/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCLI(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		slog.Error("jpgloss failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:        "jpgloss",
		Usage:       "annotate Japanese text with English meanings",
		ArgsUsage:   "<file>",
		Version:     app.Version,
		HideVersion: true,
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config",
				EnvVars: []string{"JPGLOSS_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: text, html or json",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "vocabulary filter: kanji or japanese",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "show a lookup progress bar on stderr",
			},
		},
		Action: annotateFile,
		Commands: []*cli.Command{
			{
				Name:   "repl",
				Usage:  "annotate lines typed at an interactive prompt",
				Action: repl,
			},
			{
				Name:  "cache",
				Usage: "lookup cache maintenance",
				Subcommands: []*cli.Command{
					{
						Name:  "purge",
						Usage: "delete cached lookups older than a given age",
						Flags: []cli.Flag{
							&cli.DurationFlag{
								Name:  "older-than",
								Usage: "minimum age of purged entries",
								Value: defaultPurgeAge,
							},
						},
						Action: purgeCache,
					},
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					_, err := io.WriteString(c.App.Writer, "jpgloss "+app.BuildVersion()+"\n")
					return err
				},
			},
		},
	}
}
