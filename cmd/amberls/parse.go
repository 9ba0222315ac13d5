package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	amber "github.com/amberlang/amber-ls"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a file and print its diagnostics",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Value: "auto",
				Usage: "0.3.4-alpha, 0.3.5-alpha, 0.4.0-alpha, or auto",
			},
		},
		Action: runParse,
	}
}

func runParse(_ context.Context, cmd *cli.Command) error {
	source, err := readInput(cmd.Args().First())
	if err != nil {
		return err
	}

	dialect, err := resolveDialectFlag(cmd.String("dialect"))
	if err != nil {
		return err
	}

	resp := amber.Parse(source, dialect)

	if len(resp.Diagnostics) == 0 {
		fmt.Fprintln(os.Stdout, "no diagnostics")

		return nil
	}

	for _, d := range resp.Diagnostics {
		fmt.Fprintf(os.Stdout, "%d-%d: %s\n", d.Span.Start, d.Span.End, d.Message)
	}

	return nil
}

func readInput(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path) //#nosec G304 -- path comes from user args
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(data), nil
}

func resolveDialectFlag(name string) (amber.Dialect, error) {
	if name == "auto" {
		return amber.DetectDialect(), nil
	}

	return amber.ParseDialect(name)
}
