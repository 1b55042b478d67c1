package main

import (
	"os"

	"github.com/btracey/diffopt/cmd/diffopt/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
