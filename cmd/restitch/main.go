package main

import (
	"fmt"
	"os"

	"github.com/restitch/restitch/cmd/restitch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Cobra is configured to not print errors. Ensure users still get a message.
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "Error:", msg)
		}
		os.Exit(1)
	}
}
