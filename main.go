package main

import (
	"os"

	"github.com/huyixi/Daily/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
