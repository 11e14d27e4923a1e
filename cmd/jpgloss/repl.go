package main

import (
	"fmt"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"
)

var replCommands = []prompt.Suggest{
	{Text: "exit", Description: "leave the prompt"},
	{Text: "quit", Description: "leave the prompt"},
}

func replCompleter(d prompt.Document) []prompt.Suggest {
	word := d.GetWordBeforeCursor()
	if word == "" || strings.Contains(d.TextBeforeCursor(), " ") {
		return nil
	}
	return prompt.FilterHasPrefix(replCommands, word, true)
}

// isQuit reports whether a prompt line ends the session. go-prompt returns
// an empty line on Ctrl-D.
func isQuit(line string) bool {
	switch strings.TrimSpace(line) {
	case "", "exit", "quit":
		return true
	}
	return false
}

func repl(c *cli.Context) error {
	p, _, err := build(c, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	var history []string
	for {
		if c.Context.Err() != nil {
			return nil
		}

		in := prompt.Input("jpgloss> ", replCompleter,
			prompt.OptionTitle("jpgloss repl"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionHistory(history),
		)
		if isQuit(in) {
			return nil
		}
		history = append(history, in)

		ctx := newRunContext(c.Context, "repl")
		if _, err := p.Run(ctx, in, c.App.Writer); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(c.App.Writer)
	}
}
