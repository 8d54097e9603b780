package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/recipecard/internal/render"
)

// isolate points HOME and the config variable at a temp dir and clears
// overrides, so the developer's own settings never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(EnvConfigPath, "")
	for _, name := range []string{
		"RECIPECARD_DB", "RECIPECARD_OUTPUT_DIR", "RECIPECARD_LOG_LEVEL",
		"RECIPECARD_LOG_USE_CASES", "RECIPECARD_PAGE_SIZE", "RECIPECARD_MARGIN_MM",
		"RECIPECARD_SCALE", "RECIPECARD_IMAGE_QUALITY",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".recipecard", "recipes.db"), cfg.DBPath)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, render.DefaultConfig(), cfg.RenderConfig())
}

func TestLoad_File(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `
db_path = "~/book.db"
output_dir = "/tmp/cards"
log_level = "DEBUG"
log_use_cases = true

[render]
page_size = "letter"
margin_mm = 20
scale = 3
image_quality = 0.8
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "book.db"), cfg.DBPath)
	assert.Equal(t, "/tmp/cards", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, render.Config{PageSize: render.PageLetter, MarginMM: 20, Scale: 3, ImageQuality: 0.8}, cfg.RenderConfig())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `output_dir = "/srv/recipes"`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/recipes", cfg.OutputDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `
log_level = "info"
[render]
scale = 3
`)
	t.Setenv("RECIPECARD_LOG_LEVEL", "error")
	t.Setenv("RECIPECARD_SCALE", "1.5")
	t.Setenv("RECIPECARD_IMAGE_QUALITY", "not-a-number")
	t.Setenv("RECIPECARD_LOG_USE_CASES", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, 1.5, cfg.Render.Scale)
	assert.Equal(t, 1.0, cfg.Render.ImageQuality, "bad numbers keep the previous value")
	assert.True(t, cfg.LogUseCases)
}

func TestLoad_UnknownKey(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `colour = "red"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad_SyntaxError(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, home, `db_path = `)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_DirectoryPath(t *testing.T) {
	home := isolate(t)
	_, err := Load(home)
	assert.ErrorContains(t, err, "is a directory")
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.DBPath = ""
	cfg.LogLevel = "loud"
	cfg.Render.PageSize = "A3"
	cfg.Render.Scale = 8
	cfg.Render.ImageQuality = 0

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "db_path is required")
	assert.Contains(t, msg, "log_level must be one of [debug info warn error]")
	assert.Contains(t, msg, `render.page_size must be one of [A4 Letter], got "A3"`)
	assert.Contains(t, msg, "render.scale must be at most 4")
	assert.Contains(t, msg, "render.image_quality must be greater than 0")
}

func TestValidate_Default(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	tests := []struct{ in, want string }{
		{"", ""},
		{"~", home},
		{"~/a/b", filepath.Join(home, "a", "b")},
		{"/x/../y", "/y"},
		{"rel/./dir", "rel/dir"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cfg := Config{LogLevel: level}
		assert.Equal(t, want, cfg.SlogLevel())
	}
}
