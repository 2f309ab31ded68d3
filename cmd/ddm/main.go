// Package main is the ddm command: it values a dividend scenario from flags
// or a YAML file and prints the prices, equations and cash flow table.
package main

import (
	"fmt"
	"os"

	"github.com/aristath/dividend-calculator/internal/cli"
	"github.com/aristath/dividend-calculator/pkg/logger"
)

const maxHorizon = 100

func main() {
	log := logger.New(logger.Config{
		Level:  "warn",
		Pretty: true,
		Output: os.Stderr,
	})

	opts, err := cli.ParseArgs(os.Args[1:], os.Stderr)
	if err == nil {
		err = cli.Run(opts.Scenario, maxHorizon, os.Stdout, log)
	}

	code := cli.ExitCode(err)
	if code != cli.ExitOK {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
