// Command spraylog parses flight-controller logs and aligns spray
// telemetry to vehicle position.
package main

import (
	"os"
	_ "time/tzdata"

	"spray-logger/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
