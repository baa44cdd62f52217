// Package main provides the tablestakes command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/tablestakes/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
