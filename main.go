package main

import (
	"os"

	"github.com/kilianp07/premium/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
