package main

import (
	"os"

	"github.com/coregx/dnfa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
