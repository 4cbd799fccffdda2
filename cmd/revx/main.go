// Command revx is a terminal client for the RevX API.
package main

import (
	"fmt"
	"os"

	"github.com/revxlabs/revx/cmd/revx/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
