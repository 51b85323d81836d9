package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/Ayoubslh/Sanned/internal/simulate"
)

// Default configuration constants.
const (
	defaultNumHelpers        = 200
	defaultNumRequests       = 500
	defaultNumOutcomes       = 300
	defaultWorkerMultiplier  = 2
	defaultTimeout           = 30 * time.Second
	defaultSimulationTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numHelpers  = flag.Int("helpers", defaultNumHelpers, "Number of helpers to seed")
		numRequests = flag.Int("requests", defaultNumRequests, "Number of help requests to fire")
		numOutcomes = flag.Int("outcomes", defaultNumOutcomes, "Number of outcome reports to send")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile     = flag.String("log", "", "Log file for simulation output (default: simulation_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSimulationTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:     *baseURL,
		NumHelpers:  *numHelpers,
		NumRequests: *numRequests,
		NumOutcomes: *numOutcomes,
		Workers:     *workers,
		Timeout:     *timeout,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	stats, err := simulate.Run(ctx, config)
	if err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
	simulate.PrintStats(stats)
}
