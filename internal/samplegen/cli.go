package samplegen

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/shopease/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging initializes the logger on stdout and, when logFile is set,
// on that file too.
func SetupLogging(logFile string) error {
	var w io.Writer = os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
	}
	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the sample extract tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`ShopEase Sample Extracts
========================

Writes a synthetic extract directory for the dashboard and optionally checks
a running server against it.

Usage:
  go run ./cmd/sample-extracts [options]

Options:
  -out string
        Output directory (default "data")
  -products int
        Well-formed product rows (default 500)
  -sellers int
        Well-formed seller rows (default 120)
  -cities int
        Customer cities (default 12)
  -seed uint
        Seed for reproducible output (default random)
  -verify string
        Base URL of a dashboard serving -out, e.g. http://localhost:9080
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Also log to this file
  -verbose
        Log every verified band
  -help
        Show this help message

Every score extract carries one out-of-domain row and one malformed row.
`)
}
