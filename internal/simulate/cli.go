package simulate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Ayoubslh/Sanned/pkg/logger"
)

// logFilePermission restricts simulation logs to the owner.
const logFilePermission = 0600

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simulation_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, file))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Sanned Matching Simulator
=========================

Seeds a running matching service with helpers, fires help requests and
reports outcomes, exercising the full matching and learning loop.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -helpers int
        Number of helpers to seed (default 200)
  -requests int
        Number of help requests to fire (default 500)
  -outcomes int
        Number of outcome reports to send (default 300)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for simulation output (default: simulation_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/simulate/main.go

  # Heavier load against another instance
  go run cmd/simulate/main.go -helpers 1000 -requests 5000 -url http://localhost:8080
`)
}

// PrintStats writes a human-readable simulation summary.
func PrintStats(stats *Stats) {
	log.Printf("Simulation finished in %s", stats.Duration.Round(time.Millisecond))
	log.Printf("  helpers seeded:     %d", stats.HelpersSeeded)
	log.Printf("  requests sent:      %d (matched %d, unmatched %d, failed %d)",
		stats.RequestsSent, stats.RequestsMatched, stats.RequestsUnmatched, stats.RequestsFailed)
	log.Printf("  outcomes sent:      %d (accepted %d, duplicate %d, failed %d)",
		stats.OutcomesSent, stats.OutcomesAccepted, stats.OutcomesDuplicate, stats.OutcomesFailed)
}
