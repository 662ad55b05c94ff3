package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	// Fields is the header row and fixes the column order. Record keys
	// outside this list are discarded; missing keys produce empty cells.
	Fields    []string
	Records   []map[string]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write streams the records as CSV and returns the number of data rows
// written.
func (w *CSVWriter) Write(out io.Writer, options WriteOptions) (int, error) {
	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return 0, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)

	if len(options.Fields) > 0 {
		if err := writer.Write(options.Fields); err != nil {
			return 0, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	row := make([]string, len(options.Fields))
	for i, record := range options.Records {
		for j, field := range options.Fields {
			row[j] = record[field]
		}
		if err := writer.Write(row); err != nil {
			return i, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return len(options.Records), writer.Error()
}

// WriteFile writes the records to a CSV file, creating parent directories
// as needed.
func (w *CSVWriter) WriteFile(filePath string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filePath, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filePath, err)
	}
	defer file.Close()

	rows, err := w.Write(file, options)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	w.logger.Info("CSV file written",
		slog.String("file_path", filePath),
		slog.Int("rows", rows))

	return file.Close()
}

// WriteTable streams a header row plus pre-built string rows as CSV.
// Used for table downloads where the rows are already projected.
func (w *CSVWriter) WriteTable(out io.Writer, headers []string, rows [][]string) (int, error) {
	writer := csv.NewWriter(out)

	if err := writer.Write(headers); err != nil {
		return 0, fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return i, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return len(rows), writer.Error()
}
