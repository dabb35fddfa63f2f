package main

import (
	"os"

	"github.com/challengely/challengely/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
