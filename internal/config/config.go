// Package config loads recipecard settings from a TOML file, an optional .env
// file and RECIPECARD_* environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/alexanderramin/recipecard/internal/render"
)

// EnvConfigPath names the variable that points at an alternate config file.
const EnvConfigPath = "RECIPECARD_CONFIG"

// Render holds document export settings.
type Render struct {
	PageSize     string  `toml:"page_size" validate:"oneof=A4 Letter"`
	MarginMM     float64 `toml:"margin_mm" validate:"gte=0,lte=60"`
	Scale        float64 `toml:"scale" validate:"gte=1,lte=4"`
	ImageQuality float64 `toml:"image_quality" validate:"gt=0,lte=1"`
}

// Config is the full application configuration.
type Config struct {
	DBPath      string `toml:"db_path" validate:"required"`
	OutputDir   string `toml:"output_dir" validate:"required"`
	LogLevel    string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogUseCases bool   `toml:"log_use_cases"`
	Render      Render `toml:"render"`
}

// Default returns the configuration used when no file or variable overrides it.
func Default() Config {
	rc := render.DefaultConfig()
	return Config{
		DBPath:    "~/.recipecard/recipes.db",
		OutputDir: ".",
		LogLevel:  "warn",
		Render: Render{
			PageSize:     rc.PageSize,
			MarginMM:     rc.MarginMM,
			Scale:        rc.Scale,
			ImageQuality: rc.ImageQuality,
		},
	}
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/recipecard/config.toml")
}

// Load resolves the config file (path, then RECIPECARD_CONFIG, then the
// default location), decodes it if present, applies .env and environment
// overrides, and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	// A .env in the working directory is optional.
	_ = godotenv.Load()

	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", false, err
		}
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// applyEnv overrides cfg from RECIPECARD_* variables. Unparseable numbers
// are ignored and the previous value kept.
func applyEnv(cfg *Config) {
	if v := os.Getenv("RECIPECARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("RECIPECARD_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("RECIPECARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RECIPECARD_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv("RECIPECARD_PAGE_SIZE"); v != "" {
		cfg.Render.PageSize = v
	}
	applyFloatEnv(&cfg.Render.MarginMM, "RECIPECARD_MARGIN_MM")
	applyFloatEnv(&cfg.Render.Scale, "RECIPECARD_SCALE")
	applyFloatEnv(&cfg.Render.ImageQuality, "RECIPECARD_IMAGE_QUALITY")
}

func applyFloatEnv(dst *float64, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		*dst = f
	}
}

func (c *Config) normalize() error {
	var err error
	if c.DBPath, err = ExpandPath(strings.TrimSpace(c.DBPath)); err != nil {
		return err
	}
	if c.OutputDir, err = ExpandPath(strings.TrimSpace(c.OutputDir)); err != nil {
		return err
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch strings.ToLower(strings.TrimSpace(c.Render.PageSize)) {
	case "a4":
		c.Render.PageSize = render.PageA4
	case "letter":
		c.Render.PageSize = render.PageLetter
	}
	return nil
}

// RenderConfig converts the render section for the renderers.
func (c *Config) RenderConfig() render.Config {
	return render.Config{
		PageSize:     c.Render.PageSize,
		MarginMM:     c.Render.MarginMM,
		Scale:        c.Render.Scale,
		ImageQuality: c.Render.ImageQuality,
	}
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// ExpandPath resolves a leading ~ to the home directory and cleans the path.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p), nil
}
