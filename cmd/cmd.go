// Package cmd provides the parley command line entry points.
//
// Commands:
//   - serve: HTTP relay server between the chat page, PostgreSQL, and Gemini
//   - version: build information
//
// The serve command installs signal handlers and shuts down gracefully via
// context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/parley0/parley/internal/log"
)

// Execute is the main entry point for the parley application.
func Execute() error {
	// Initialize logger once at entry point
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(log.New(log.Config{Level: level}))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("Parley - Gemini chat relay server")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  parley serve [addr] Start the HTTP relay server (default: 127.0.0.1:3400)")
	fmt.Println("  parley version      Show version information")
	fmt.Println("  parley help         Show this help")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY      Gemini API key (unset runs the server in demo mode)")
	fmt.Println("  DATABASE_URL        PostgreSQL URL (overrides the postgres_* config fields)")
	fmt.Println("  PARLEY_RATE_BURST   Per-IP rate limit burst (default: 60)")
	fmt.Println("  DEBUG               Enable debug logging")
	fmt.Println()
	fmt.Println("Learn more: https://github.com/parley0/parley")
}
