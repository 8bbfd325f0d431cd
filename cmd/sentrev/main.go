package main

import (
	"os"

	"github.com/wonpil/sentrev/cmd/sentrev/commands"
)

// main is the entry point for the sentrev CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/sentrev [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
