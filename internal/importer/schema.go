package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/schedule"
	"gopkg.in/yaml.v3"
)

// Seed is the top-level structure of a parish seed file.
type Seed struct {
	Parish    EntityImport       `json:"parish" yaml:"parish"`
	Entities  []EntityImport     `json:"entities" yaml:"entities"`
	MassTimes []schedule.RawSlot `json:"massTimes,omitempty" yaml:"massTimes,omitempty"`
}

// EntityImport defines one directory node in the seed file. The order of
// entries sharing a parent is their child order.
type EntityImport struct {
	ID          string             `json:"id" yaml:"id"`
	Kind        string             `json:"kind" yaml:"kind"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	ParentID    string             `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Attributes  *domain.Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Format is the encoding of a seed file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported seed file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ParseSeed decodes data in the given format.
func ParseSeed(data []byte, format Format) (*Seed, error) {
	var seed Seed
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parsing seed JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parsing seed YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown seed format %q", format)
	}
	return &seed, nil
}

// LoadSeed reads and parses a seed file, choosing the decoder by extension.
func LoadSeed(path string) (*Seed, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data, format)
}
