package main

import (
	"os"

	"github.com/anand-106/coursegen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
