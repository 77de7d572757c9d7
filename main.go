package main

import (
	"os"

	"github.com/termtip/termtip/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
