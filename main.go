// main is the entry point for the teampulse CLI.
package main

import (
	"os"

	"github.com/teampulse/teampulse/cmd"
	"github.com/teampulse/teampulse/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
