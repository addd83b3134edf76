// Package main is the CLI entry point for the load generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinisupply/tools/loadgen/internal/runner"
)

var version = "dev"

func main() {
	var (
		baseURL     string
		identifier  string
		password    string
		duration    time.Duration
		concurrency int
		qps         float64
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&baseURL, "base-url", "http://localhost:8080", "Base URL of the API")
	flag.StringVar(&identifier, "user", "", "Username or email to authenticate as")
	flag.StringVar(&password, "password", "", "Password for the user")
	flag.DurationVar(&duration, "duration", time.Minute, "Test duration (e.g. 5m, 1h)")
	flag.IntVar(&concurrency, "concurrency", 4, "Number of concurrent workers")
	flag.Float64Var(&qps, "qps", 10, "Target queries per second")
	flag.BoolVar(&verbose, "verbose", false, "Print individual request errors")
	flag.BoolVar(&showVersion, "version", false, "Show version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("loadgen %s\n", version)
		return
	}
	if identifier == "" || password == "" {
		fmt.Fprintln(os.Stderr, "both -user and -password are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := runner.New(ctx, runner.Config{
		BaseURL:     baseURL,
		Identifier:  identifier,
		Password:    password,
		Duration:    duration,
		Concurrency: concurrency,
		QPS:         qps,
		Verbose:     verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "loadgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("running %d workers at %.1f qps against %s for %s\n", concurrency, qps, baseURL, duration)
	report := r.Run(ctx)
	printReport(report)

	if report.Errors > 0 {
		os.Exit(1)
	}
}

func printReport(report runner.Report) {
	fmt.Printf("\n%-22s %8s %8s %10s %10s %10s\n", "operation", "count", "errors", "p50", "p95", "max")
	for _, op := range report.Ops {
		fmt.Printf("%-22s %8d %8d %10s %10s %10s\n",
			op.Name, op.Count, op.Errors,
			op.P50.Round(time.Millisecond),
			op.P95.Round(time.Millisecond),
			op.Max.Round(time.Millisecond))
	}
	rate := float64(report.Total) / report.Duration.Seconds()
	fmt.Printf("\ntotal %d requests, %d errors in %s (%.1f req/s)\n",
		report.Total, report.Errors, report.Duration.Round(time.Second), rate)
}
