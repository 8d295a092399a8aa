package main

import (
	"os"

	"github.com/mmynk/retailbill/cmd/billing/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
