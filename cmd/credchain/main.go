package main

import (
	"os"

	"github.com/majorcontext/credchain/cmd/credchain/cli"
	"github.com/majorcontext/credchain/source"
)

func main() {
	source.RegisterAll()
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
