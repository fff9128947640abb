package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/analyze"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
)

// isolatedOpts ignores every layer shared with the host machine.
func isolatedOpts(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOpts(t.TempDir()))
	require.NoError(t, err)

	assert.Empty(t, result.LoadedFrom)
	assert.Equal(t, config.DefaultHistoryCapacity, result.Config.History.Capacity)
	assert.Equal(t, config.DefaultHistoryMaxFiles, result.Config.History.MaxFiles)
	assert.True(t, result.Config.Backups.Enabled)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".luaguard.yml", `
checks:
  naming-convention:
    enabled: false
ignore:
  - vendor/**
history:
  capacity: 3
backups:
  enabled: false
`)

	result, err := Load(context.Background(), isolatedOpts(dir))
	require.NoError(t, err)

	require.Len(t, result.LoadedFrom, 1)
	cc := result.Config.CheckFor(analyze.CheckNamingConvention)
	require.NotNil(t, cc)
	require.NotNil(t, cc.Enabled)
	assert.False(t, *cc.Enabled)
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)
	assert.Equal(t, 3, result.Config.History.Capacity)
	assert.Equal(t, config.DefaultHistoryMaxFiles, result.Config.History.MaxFiles)
	assert.False(t, result.Config.Backups.Enabled)
}

func TestLoadUpwardSearch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".luaguard.yml", "ignore: [build/**]\n")
	nested := filepath.Join(root, "src", "game")
	require.NoError(t, os.MkdirAll(nested, 0755))

	result, err := Load(context.Background(), isolatedOpts(nested))
	require.NoError(t, err)
	assert.Equal(t, []string{"build/**"}, result.Config.Ignore)
}

func TestLoadStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".luaguard.yml", "ignore: [outer/**]\n")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

	result, err := Load(context.Background(), isolatedOpts(repo))
	require.NoError(t, err)
	assert.Empty(t, result.Config.Ignore)
}

func TestLoadExplicitPathSkipsProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".luaguard.yml", "ignore: [project/**]\n")
	explicit := writeConfig(t, dir, "custom.yml", "ignore: [explicit/**]\n")

	opts := isolatedOpts(dir)
	opts.ExplicitPath = explicit
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"explicit/**"}, result.Config.Ignore)
	assert.Equal(t, []string{explicit}, result.LoadedFrom)
}

func TestLoadEnvOverrides(t *testing.T) {
	// Not parallel: mutates process environment.

	t.Setenv("LUAGUARD_AUTO_FIX", "true")
	t.Setenv("LUAGUARD_JOBS", "4")
	t.Setenv("LUAGUARD_FORMAT", "json")
	t.Setenv("LUAGUARD_HISTORY_CAPACITY", "9")
	t.Setenv("LUAGUARD_IGNORE", "a/**, b/**")

	opts := isolatedOpts(t.TempDir())
	opts.IgnoreEnv = false
	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, result.Config.AutoFix)
	assert.Equal(t, 4, result.Config.Jobs)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 9, result.Config.History.Capacity)
	assert.Equal(t, []string{"a/**", "b/**"}, result.Config.Ignore)
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	t.Setenv("LUAGUARD_JOBS", "many")

	opts := isolatedOpts(t.TempDir())
	opts.IgnoreEnv = false
	_, err := Load(context.Background(), opts)
	require.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".luaguard.yml", "history:\n  capacity: 0\n")

	_, err := Load(context.Background(), isolatedOpts(dir))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "history.capacity", verr.Field)
}

func TestLoadWarnsOnUnknownCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".luaguard.yml", "checks:\n  no-such-check:\n    enabled: true\n")

	result, err := Load(context.Background(), isolatedOpts(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no-such-check")
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".luaguard.yml", "checks: [not: a: map\n")

	_, err := Load(context.Background(), isolatedOpts(dir))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults pass", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Validate(config.NewConfig()).Valid())
	})

	t.Run("bad format fails", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Format = "xml"
		assert.False(t, Validate(cfg).Valid())
	})

	t.Run("negative jobs fails", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Jobs = -1
		assert.False(t, Validate(cfg).Valid())
	})

	t.Run("bad severity warns", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		sev := "fatal"
		cfg.Checks[analyze.CheckDeprecatedAPI] = config.CheckConfig{Severity: &sev}
		result := Validate(cfg)
		assert.True(t, result.Valid())
		assert.NotEmpty(t, result.Warnings)
	})
}
