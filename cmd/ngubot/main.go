package main

import (
	"os"

	"github.com/jngu/ngubot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
