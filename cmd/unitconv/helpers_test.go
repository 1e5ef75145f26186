package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func executeCommand(args ...string) (string, error) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func seedPreferences(t *testing.T, home string, units map[string]string) {
	t.Helper()
	path := filepath.Join(home, ".unitconv", "preferences.json")
	data, err := json.MarshalIndent(registry.PreferencesFile{Version: "1.0", Units: units}, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func newTestApp(t *testing.T, configPath string) *AppContext {
	t.Helper()
	app := &AppContext{}
	require.NoError(t, app.init(&rootFlags{configPath: configPath}))
	return app
}

const typographyConfig = `version: "1.0"
systems:
  - id: typography
    name: Typography
    internal_unit: pt
    units:
      - { symbol: pt, name: Point, precision: 1, step: 0.5, factor: 1 }
      - { symbol: pica, name: Pica, precision: 2, step: 0.1, factor: 12 }
      - { symbol: "%", name: Percent, precision: 1, step: 1, relative: true, context: dimension }
`
