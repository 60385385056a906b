package state

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the document encoding
type Format int

const (
	// FormatJSON is the host patch format
	FormatJSON Format = iota
	// FormatYAML is the human-editable format
	FormatYAML
	// FormatBinary is a compact format for snapshots
	FormatBinary
)

// String returns the canonical name of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "binary", "bin":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("unknown state format %q", name)
	}
}

// FormatForPath picks a format from a file extension, defaulting to JSON
func FormatForPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, err := ParseFormat(ext); err == nil {
		return f
	}
	return FormatJSON
}
