// Package export writes API responses to files.
//
// Lists of records can be written as CSV, JSON or YAML. Single documents (e.g. a Person) are written as JSON or YAML.
// The format is chosen from the file's extension.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TimestampFormat is the format used to expand {timestamp} in output paths
const TimestampFormat = "20060102_150405"

// Record can be written as a CSV row
type Record interface {
	CSVHeader() []string
	CSVRecord() []string
}

// ExpandPath returns the path to write to. If path is blank, fallback is used. Any {timestamp} placeholder is
// replaced by now, in TimestampFormat.
func ExpandPath(path, fallback string, now time.Time) string {
	if path == "" {
		path = fallback
	}
	return strings.ReplaceAll(path, "{timestamp}", now.Format(TimestampFormat))
}

// Write writes the records to path. The format depends on path's extension: .json and .yaml/.yml are written as
// JSON and YAML respectively. Anything else is written as CSV, with the extension replaced by .csv.
//
// Write returns the absolute path of the file that was written.
func Write[T Record](path string, records []T) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return WriteJSON(path, records)
	case ".yaml", ".yml":
		return WriteYAML(path, records)
	default:
		return WriteCSV(strings.TrimSuffix(path, filepath.Ext(path))+".csv", records)
	}
}

// WriteDocument writes v to path, as YAML if path has a .yaml/.yml extension and as JSON otherwise.
func WriteDocument(path string, v any) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return WriteYAML(path, v)
	default:
		return WriteJSON(path, v)
	}
}

func WriteJSON(path string, v any) (string, error) {
	return write(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

// WriteYAML writes v as YAML. Field names follow v's JSON encoding, so JSON and YAML output use the same keys.
func WriteYAML(path string, v any) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	var doc yaml.Node
	if err = yaml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	clearStyle(&doc)
	return write(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return err
		}
		return enc.Close()
	})
}

// clearStyle removes the flow & quoting styles yaml.v3 keeps from the JSON input.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func WriteCSV[T Record](path string, records []T) (string, error) {
	return write(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		var header T
		if err := cw.Write(header.CSVHeader()); err != nil {
			return err
		}
		for _, record := range records {
			if err := cw.Write(record.CSVRecord()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

func write(path string, encode func(io.Writer) error) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("path: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	if err = encode(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", abs, err)
	}
	return abs, f.Close()
}
