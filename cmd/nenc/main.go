package main

import (
	"os"

	"github.com/msto63/nestedencoder/cmd/nenc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
