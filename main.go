package main

import (
	"os"

	"github.com/wenchichenginl/HERON/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
