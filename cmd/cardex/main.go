// Package main is the entry point for the cardex CLI.
package main

import (
	"os"

	"github.com/jmylchreest/cardex/cmd/cardex/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
