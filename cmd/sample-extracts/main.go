package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/shopease/internal/samplegen"
)

// Default configuration constants.
const (
	defaultOutDir  = "data"
	defaultTimeout = 30 * time.Second
	defaultRunTime = 5 * time.Minute
)

func main() {
	var (
		outDir   = flag.String("out", defaultOutDir, "Output directory for the extracts")
		products = flag.Int("products", samplegen.DefaultProducts, "Number of well-formed product rows")
		sellers  = flag.Int("sellers", samplegen.DefaultSellers, "Number of well-formed seller rows")
		cities   = flag.Int("cities", samplegen.DefaultCities, "Number of customer cities")
		seed     = flag.Uint64("seed", 0, "Seed for reproducible output (0 picks one)")
		verify   = flag.String("verify", "", "Base URL of a dashboard serving -out")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Also log to this file")
		verbose  = flag.Bool("verbose", false, "Log every verified band")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		samplegen.ShowHelp()
		return
	}

	if err := samplegen.SetupLogging(*logFile); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTime)
	defer cancel()

	cfg := &samplegen.Config{
		OutDir:   *outDir,
		Products: *products,
		Sellers:  *sellers,
		Cities:   *cities,
		Seed:     *seed,
		BaseURL:  *verify,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}
	if _, err := samplegen.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("Sample run failed: " + err.Error() + "\n")
		stop()
		cancel()
		os.Exit(1)
	}
}
