// The devs command runs the example simulations that ship with the engine.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional defaults, e.g. DEVS_MONITOR_PORT, come from a local .env.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
