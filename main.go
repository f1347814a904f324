package main

import (
	"os"

	"github.com/rkapur/pathwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
