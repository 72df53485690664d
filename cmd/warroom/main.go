package main

import (
	"os"

	"github.com/minglun/v32/backend/cmd/warroom/commands"
)

// main is the entry point for the warroom CLI:
// go run ./cmd/warroom [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
