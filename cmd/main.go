package main

import (
	"os"

	"github.com/soundprediction/semagraph/cmd/semagraph"
)

func main() {
	if err := semagraph.Execute(); err != nil {
		os.Exit(1)
	}
}
