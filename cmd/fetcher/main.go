// Command fetcher downloads the institutions and branch-locations
// datasets from the FDIC BankFind API and writes them to disk, ready
// for the web server to load at startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Eringolaw/fdic-bank-explorer/internal/config"
	"github.com/Eringolaw/fdic-bank-explorer/internal/exporter"
	"github.com/Eringolaw/fdic-bank-explorer/internal/fdic"
	"github.com/Eringolaw/fdic-bank-explorer/internal/infrastructure"
)

func main() {
	var (
		outDir   = flag.String("out", "data", "output directory for the dataset files")
		format   = flag.String("format", "both", "output format: csv, json or both")
		which    = flag.String("dataset", "both", "dataset to fetch: institutions, locations or both")
		pageSize = flag.Int("page-size", 0, "records per request (default from config)")
		timeout  = flag.Duration("timeout", 0, "per-request timeout (default from config)")
		verbose  = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if err := run(*outDir, *format, *which, *pageSize, *timeout, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "fetcher: %v\n", err)
		os.Exit(1)
	}
}

func run(outDir, format, which string, pageSize int, timeout time.Duration, verbose bool) error {
	switch format {
	case "csv", "json", "both":
	default:
		return fmt.Errorf("unsupported format %q (use csv, json or both)", format)
	}
	switch which {
	case "institutions", "locations", "both":
	default:
		return fmt.Errorf("unsupported dataset %q (use institutions, locations or both)", which)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if pageSize > 0 {
		cfg.Fetcher.PageSize = pageSize
	}
	if timeout > 0 {
		cfg.Fetcher.Timeout = timeout
	}

	logCfg := cfg.Logging
	logCfg.Format = "text"
	logCfg.Output = "stdout"
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	client := fdic.NewClient(cfg.Fetcher, logger)
	logger.Info("fetching from BankFind",
		slog.String("base_url", cfg.Fetcher.BaseURL),
		slog.Int("page_size", cfg.Fetcher.PageSize),
		slog.Duration("pace", client.Pace()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formats := formatsFor(format)
	if which == "institutions" || which == "both" {
		if err := fetchDataset(ctx, logger, outDir, formats, "institutions", fdic.InstitutionFields, client.FetchInstitutions); err != nil {
			return err
		}
	}
	if which == "locations" || which == "both" {
		if err := fetchDataset(ctx, logger, outDir, formats, "locations", fdic.LocationFields, client.FetchLocations); err != nil {
			return err
		}
	}

	return nil
}

func formatsFor(format string) []string {
	if format == "both" {
		return []string{"csv", "json"}
	}
	return []string{format}
}

// fetchDataset downloads one dataset and writes it in every requested
// format, fetching only once.
func fetchDataset(
	ctx context.Context,
	logger *slog.Logger,
	outDir string,
	formats []string,
	name string,
	fields []string,
	fetch func(context.Context) ([]map[string]string, error),
) error {
	start := time.Now()
	records, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}

	for _, format := range formats {
		outPath := filepath.Join(outDir, name+"."+format)
		switch format {
		case "csv":
			err = exporter.NewCSVWriter(logger).WriteFile(outPath, exporter.WriteOptions{
				Fields:  fields,
				Records: records,
			})
		case "json":
			err = exporter.NewJSONWriter(logger).WriteFile(outPath, fields, records)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		logger.Info("dataset written",
			slog.String("dataset", name),
			slog.String("path", outPath),
			slog.Int("records", len(records)),
			slog.Duration("took", time.Since(start).Round(time.Millisecond)))
	}
	return nil
}
