package main

import (
	"os"

	"github.com/abhisek/fhirtestgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
