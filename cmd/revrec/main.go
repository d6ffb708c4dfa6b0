package main

import (
	"os"

	"github.com/xraph/revrec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
