// Package main is the entry point for the goaltray CLI.
package main

import (
	"os"

	"github.com/goaltray/goaltray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
