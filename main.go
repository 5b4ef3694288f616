package main

import (
	"os"

	"github.com/sadopc/deen/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		os.Exit(1)
	}
}
