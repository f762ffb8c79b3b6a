package main

import (
	"os"

	"github.com/abhisek/lexiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
