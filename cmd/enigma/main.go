// Command enigma simulates rotor cipher machines.
//
// Usage:
//
//	enigma convert naval.conf message.txt
//	enigma validate naval.conf --setup "* B Beta I II III AAAA"
//	enigma trace naval.conf --setup "* B Beta I II III AADU" AAAA
//	enigma replay --db ./enigma.db
package main

import (
	"fmt"
	"os"

	"github.com/roach88/enigma/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
