package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format names a machine description encoding.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatClassic Format = "classic"
	FormatYAML    Format = "yaml"
	FormatCUE     Format = "cue"
)

// ValidFormats lists the accepted --config-format values.
var ValidFormats = []Format{FormatAuto, FormatClassic, FormatYAML, FormatCUE}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range ValidFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid config format %q: must be one of %v", s, ValidFormats)
}

// DetectFormat picks a format from the file extension. Anything that is not
// YAML or CUE is read as classic.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cue":
		return FormatCUE
	default:
		return FormatClassic
	}
}

// Source is a loaded machine description together with the text it came
// from, so it can be recorded and parsed again later.
type Source struct {
	Path   string
	Format Format
	Text   string
	Spec   *MachineSpec
}

// Load reads and decodes the machine description at path.
func Load(path string, format Format) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}
	spec, err := Parse(path, data, format)
	if err != nil {
		return nil, err
	}
	return &Source{Path: path, Format: format, Text: string(data), Spec: spec}, nil
}

// Parse decodes data in the given format. name is used in error messages.
func Parse(name string, data []byte, format Format) (*MachineSpec, error) {
	var (
		spec *MachineSpec
		err  error
	)
	switch format {
	case FormatClassic:
		spec, err = parseClassic(name, data)
	case FormatYAML:
		spec, err = parseYAML(name, data)
	case FormatCUE:
		spec, err = parseCUE(name, data)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, err
	}
	normalizeSpec(spec)
	return spec, nil
}
