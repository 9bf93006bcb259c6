package main

import (
	"os"

	"github.com/Dan9191/calc-service/cmd/calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
