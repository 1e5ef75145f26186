package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads a configuration file from disk, decoding YAML or TOML by extension, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unitserrors.NewParseError(path, 0, err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes data without validating it. path selects the format and labels errors.
func Parse(path string, data []byte) (*Config, error) {
	var cfg Config

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, unitserrors.NewParseError(path, extractLine(err), err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, unitserrors.NewParseError(path, tomlLine(err), err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, unitserrors.NewParseError(path, 0, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
		}
	default:
		return nil, unitserrors.NewParseError(path, 0, fmt.Errorf("unsupported config format %q: use .yaml, .yml or .toml", ext))
	}

	return &cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}

func tomlLine(err error) int {
	var parseErr toml.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Position.Line
	}
	return 0
}
