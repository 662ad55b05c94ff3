package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// JSONWriter exports fetched records as a JSON array of objects.
type JSONWriter struct {
	logger *slog.Logger
}

// NewJSONWriter creates a new JSON writer instance
func NewJSONWriter(logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{logger: logger}
}

// Write marshals the records as a two-space indented array. Keys outside
// the field set are discarded so CSV and JSON output carry the same data.
func (w *JSONWriter) Write(out io.Writer, fields []string, records []map[string]string) (int, error) {
	filtered := make([]map[string]string, len(records))
	for i, record := range records {
		obj := make(map[string]string, len(fields))
		for _, field := range fields {
			if v, ok := record[field]; ok {
				obj[field] = v
			}
		}
		filtered[i] = obj
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(filtered); err != nil {
		return 0, fmt.Errorf("failed to encode records: %w", err)
	}
	return len(filtered), nil
}

// WriteFile writes the records to a JSON file, creating parent directories
// as needed.
func (w *JSONWriter) WriteFile(filePath string, fields []string, records []map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filePath, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filePath, err)
	}
	defer file.Close()

	rows, err := w.Write(file, fields, records)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	w.logger.Info("JSON file written",
		slog.String("file_path", filePath),
		slog.Int("rows", rows))

	return file.Close()
}
