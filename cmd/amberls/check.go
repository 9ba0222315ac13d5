package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	amber "github.com/amberlang/amber-ls"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse a file and exit 1 if it has diagnostics",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dialect",
				Value: "auto",
				Usage: "0.3.4-alpha, 0.3.5-alpha, 0.4.0-alpha, or auto",
			},
		},
		Action: runCheck,
	}
}

func runCheck(_ context.Context, cmd *cli.Command) error {
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
		return nil
	}

	for _, d := range resp.Diagnostics {
		fmt.Fprintf(os.Stderr, "%d-%d: %s\n", d.Span.Start, d.Span.End, d.Message)
	}

	return cli.Exit("", 1)
}
