// README: etactl entry point; loads .env and dispatches cobra subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "etactl:", err)
		os.Exit(1)
	}
}
