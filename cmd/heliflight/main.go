package main

import (
	"os"

	"github.com/yegors/heliflight/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
