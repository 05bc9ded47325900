package main

import (
	"os"

	"github.com/opsgrid/dbfleet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
