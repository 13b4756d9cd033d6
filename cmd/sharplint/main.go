// Package main provides the sharplint command.
package main

import (
	"os"

	"github.com/leapstack-labs/sharplint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
