// Package main is the entry point for the nativedialog CLI.
package main

import (
	"os"

	"github.com/runger/nativedialog/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
