package main

import (
	"os"

	"github.com/ha404/dual-momentum/cmd/dualmomentum/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
