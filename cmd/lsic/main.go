package main

import (
	"os"

	"lsic/cmd/lsic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
