// Package main provides the entry point for the markboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/markboard/cmd/markboard/commands"
	"github.com/Sumatoshi-tech/markboard/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
