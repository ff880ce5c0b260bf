package network

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile dispatches to the appropriate parser based on filename
// extension: .ini, .json, .yml/.yaml (§6 "Three accepted: INI, JSON, YAML").
func LoadFile(filename string) (RawConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("network: reading %s: %w", filename, err)
	}
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".ini":
		return ParseINI(data)
	case ".json":
		return ParseJSON(data)
	case ".yml", ".yaml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("network: unknown model file type %q; accepted types are [ini, json, yml]", ext)
	}
}
