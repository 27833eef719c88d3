package main

import (
	"os"

	"github.com/fitz/dayslot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
