// Package main provides planctl, a command line runner for financial plan files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/finplan/backend/internal/application/planning"
	"github.com/finplan/backend/internal/infrastructure/config"
	"github.com/finplan/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var version = "dev"

type options struct {
	planPath    string
	outputPath  string
	logLevel    string
	compact     bool
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("planctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.planPath, "plan", "", "Path to the YAML plan file")
	fs.StringVar(&opts.planPath, "p", "", "Path to the YAML plan file (shorthand)")
	fs.StringVar(&opts.outputPath, "output", "", "Write JSON results to this file instead of stdout")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.compact, "compact", false, "Print compact JSON")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(stderr, `planctl - run a financial plan file through the planning calculators

USAGE:
    planctl -plan <file.yaml> [options]

OPTIONS:
`)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
EXAMPLES:
    planctl -plan plans/q3.yaml
    planctl -p plans/q3.yaml -output results.json -log-level info
`)
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !opts.showVersion && opts.planPath == "" {
		fs.Usage()
		return opts, fmt.Errorf("-plan is required")
	}
	return opts, nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "planctl %s\n", version)
		return 0
	}

	log, err := logger.New(logger.Config{Level: opts.logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()
	ctx = logger.WithContext(ctx, log)

	plan, err := LoadPlan(opts.planPath)
	if err != nil {
		log.Error("Failed to load plan", zap.String("path", opts.planPath), zap.Error(err))
		return 1
	}

	svc := planning.NewPlanningService(config.DefaultPlanningConfig(), nil)
	results, err := Run(ctx, svc, plan)
	if err != nil {
		log.Error("Plan failed", zap.String("plan", plan.Name), zap.Error(err))
		return 1
	}

	out := stdout
	if opts.outputPath != "" {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			log.Error("Failed to create output file", zap.String("path", opts.outputPath), zap.Error(err))
			return 1
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(results); err != nil {
		log.Error("Failed to write results", zap.Error(err))
		return 1
	}

	log.Info("Plan completed", zap.String("plan", plan.Name))
	return 0
}
