package main

import (
	"os"

	"github.com/theMomax/openmeteogram/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
