// Command amberls is a dialect-aware parser CLI for Amber.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "amberls",
		Version: version,
		Usage:   "Multi-dialect Amber parser front end",
		Commands: []*cli.Command{
			parseCommand(),
			checkCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
