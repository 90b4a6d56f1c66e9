package interchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nhle/habit-tracker/internal/model"
)

// ErrUnknownFormat is returned for an export format other than json, yaml or toml.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat maps a flag value or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// browserDump mirrors the localStorage key layout so a JSON export can be
// fed back to ImportBrowser.
type browserDump struct {
	Tasks     model.TaskSnapshot     `json:"habitTasks"`
	Templates model.TemplateSnapshot `json:"habitTemplates"`
	General   model.GeneralSnapshot  `json:"generalTasks"`
}

// document is the YAML and TOML export layout.
type document struct {
	Tasks     model.TaskSnapshot     `yaml:"tasks" toml:"tasks"`
	Templates model.TemplateSnapshot `yaml:"templates" toml:"templates"`
	General   model.GeneralSnapshot  `yaml:"general" toml:"general"`
}

// Export writes snaps to w in the given format.
func Export(w io.Writer, snaps model.Snapshots, format Format) error {
	snaps = nonNil(snaps)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(browserDump(snaps)); err != nil {
			return fmt.Errorf("encoding json export: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document(snaps)); err != nil {
			return fmt.Errorf("encoding yaml export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flushing yaml export: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(document(snaps)); err != nil {
			return fmt.Errorf("encoding toml export: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// nonNil swaps nil records for empty ones so exports show {} and [] rather
// than null.
func nonNil(s model.Snapshots) model.Snapshots {
	if s.Tasks == nil {
		s.Tasks = model.TaskSnapshot{}
	}
	if s.Templates == nil {
		s.Templates = model.TemplateSnapshot{}
	}
	if s.General == nil {
		s.General = model.GeneralSnapshot{}
	}
	return s
}
