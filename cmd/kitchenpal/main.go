// KitchenPal is a terminal kitchen companion: unit and temperature
// conversion, timers, notes and an assistant chef.
//
// Usage:
//
//	kitchenpal [--config file] [--verbose] [--quiet] [--no-speech] [--no-ai]
//	kitchenpal convert <amount> <from> <to> [--json]
//	kitchenpal units [--family volume|temperature]
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/kitchenpal/cmd/kitchenpal/commands"
)

func main() {
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
