package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/insights/errors"
)

// isolate keeps Load away from configuration files of the machine running
// the tests.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Generation.ShowAccessModifiers)
	assert.False(t, cfg.Generation.ShowConstexprValues)
	assert.Equal(t, 2, cfg.Generation.IndentWidth)
	assert.True(t, cfg.Generation.EmitHeaders)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 0, cfg.Batch.Jobs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[generation]
indent_width = 4
show_constexpr_values = true

[log]
level = "debug"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Generation.IndentWidth)
	assert.True(t, cfg.Generation.ShowConstexprValues)
	assert.True(t, cfg.Generation.ShowAccessModifiers, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFindsWorkingDirectoryFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("[batch]\njobs = 3\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.Jobs)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[generation]\nindent_width = 4\n"), 0644))
	t.Setenv("INSIGHTS_GENERATION_INDENT_WIDTH", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Generation.IndentWidth)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "insights config init")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[generation\n"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to read config file")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[generation]\nindent_width = 0\n"), 0644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "indent_width must be between 1 and 16")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Batch.Jobs = -1
	assert.ErrorContains(t, cfg.Validate(), "batch.jobs")

	cfg = Default()
	cfg.Generation.IndentWidth = 17
	assert.Error(t, cfg.Validate())
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Generation.ShowAccessModifiers = false
	cfg.Generation.ShowConstexprValues = true
	cfg.Generation.ShowAllCasts = true
	cfg.Generation.IndentWidth = 4
	cfg.Generation.EmitHeaders = false

	opts := cfg.Options()
	assert.True(t, opts.Flags.SkipAccess)
	assert.True(t, opts.Flags.ShowConstantExprValue)
	assert.True(t, opts.ShowAllImplicitCasts)
	assert.Equal(t, 4, opts.IndentWidth)
	assert.False(t, opts.EmitHeaders)
	assert.False(t, opts.Flags.SkipVarDecl, "position flags are never configured")
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", FileName)

	require.NoError(t, WriteDefault(path))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
