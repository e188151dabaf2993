package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Record is the persisted form of one source.
type Record struct {
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
}

// rawRecord distinguishes an omitted "enabled" from an explicit false.
type rawRecord struct {
	Path    string `json:"path"`
	Enabled *bool  `json:"enabled"`
}

// Encode writes records to w as an indented JSON array followed by a newline.
// A nil or empty slice is written as [].
func Encode(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing sources: %w", err)
	}
	return nil
}

// Decode reads a sources document from r. Empty or whitespace-only input
// yields no records. Anything else must satisfy the sources schema.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading sources: %w", err)
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	var raw []rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	records := make([]Record, 0, len(raw))
	for _, rr := range raw {
		enabled := true
		if rr.Enabled != nil {
			enabled = *rr.Enabled
		}
		records = append(records, Record{Path: rr.Path, Enabled: enabled})
	}
	return records, nil
}

// WriteFile replaces the file at path with the encoded records, creating
// parent directories as needed. The write is not atomic: an interrupted
// write can leave a truncated file behind.
func WriteFile(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing sources file %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and decodes the sources file at path.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file %s: %w", path, err)
	}
	records, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding sources file %s: %w", path, err)
	}
	return records, nil
}
