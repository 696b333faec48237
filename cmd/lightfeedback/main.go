package main

import (
	"os"

	"github.com/nfrf/lightfeedback/cmd/lightfeedback/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
