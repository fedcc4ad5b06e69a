package main

import (
	"fmt"
	"os"

	"github.com/Urbanbaseprops/property-manager/internal/app/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
