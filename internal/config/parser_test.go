package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

const typographyYAML = `version: "1.0"
logging:
  level: debug
  human_readable: false
defaults:
  system: typography
  unit: pica
systems:
  - id: typography
    name: Typography
    internal_unit: pt
    units:
      - { symbol: pt, name: Point, precision: 1, step: 0.5, factor: 1 }
      - { symbol: pica, name: Pica, precision: 2, step: 0.1, factor: 12 }
      - { symbol: "%", name: Percent, precision: 1, step: 1, relative: true, context: dimension }
`

const typographyTOML = `version = "1.0"

[defaults]
system = "typography"

[[systems]]
id = "typography"
internal_unit = "pt"

  [[systems.units]]
  symbol = "pt"
  factor = 1.0

  [[systems.units]]
  symbol = "pica"
  precision = 2
  factor = 12.0
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "units.yaml", typographyYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.HumanReadableLogs())
	assert.Equal(t, "pica", cfg.Defaults.Unit)
	require.Len(t, cfg.Systems, 1)

	systems := cfg.UnitSystems()
	require.Len(t, systems, 1)
	sys := systems[0]
	require.NoError(t, registry.ValidateSystem(sys))
	assert.Equal(t, []string{"pt", "pica", "%"}, sys.Symbols())

	pct, ok := sys.Definition("%")
	require.True(t, ok)
	assert.True(t, pct.RequiresContext)
	assert.Equal(t, registry.ContextDimension, pct.ContextType)
	assert.Equal(t, registry.CategoryRelative, pct.Category)

	assert.InDelta(t, 24, sys.Conversions["pica"].Forward(2), 1e-12)
	_, hasConv := sys.Conversions["%"]
	assert.False(t, hasConv)
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "units.toml", typographyTOML))
	require.NoError(t, err)
	assert.True(t, cfg.Logging.HumanReadableLogs())

	sys := cfg.UnitSystems()[0]
	assert.Equal(t, "typography", sys.Name)
	pt, ok := sys.Definition("pt")
	require.True(t, ok)
	assert.Equal(t, defaultPrecision, pt.Precision)
	assert.Equal(t, defaultStep, pt.Step)
	assert.Equal(t, "pt", pt.Name)
}

func TestLoadOffsetUnit(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "units.yaml", `version: "1.0"
systems:
  - id: oven
    internal_unit: C
    units:
      - { symbol: C, factor: 1, category: temperature }
      - { symbol: F, factor: 0.5555555555555556, offset: -17.77777777777778, category: temperature }
`))
	require.NoError(t, err)

	conv := cfg.UnitSystems()[0].Conversions["F"]
	assert.InDelta(t, 100, conv.Forward(212), 1e-9)
	assert.InDelta(t, 32, conv.Inverse(0), 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *unitserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.True(t, os.IsNotExist(parseErr.Unwrap()))
}

func TestLoadReportsYAMLLine(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "broken.yaml", "version: \"1.0\"\nsystems:\n  - id: [unclosed\n"))
	var parseErr *unitserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Greater(t, parseErr.Line, 0)
}

func TestLoadRejectsUnknownYAMLField(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "units.yaml", "version: \"1.0\"\ncolour: blue\n"))
	var parseErr *unitserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadRejectsUnknownTOMLKey(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "units.toml", "version = \"1.0\"\ncolour = \"blue\"\n"))
	var parseErr *unitserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "unknown keys: colour")
}

func TestLoadReportsTOMLLine(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "units.toml", "version = \"1.0\"\n\n[defaults\n"))
	var parseErr *unitserrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Greater(t, parseErr.Line, 0)
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "units.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoadEmptyYAMLFailsValidation(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "empty.yaml", ""))
	var validationErr *unitserrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "version", validationErr.Field)
}
