package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file searched for upward from the program directory.
const ConfigFileName = "rinha.yml"

// DefaultMaxDepth bounds AST nesting accepted by the loader.
const DefaultMaxDepth = 10000

var ErrConfigNotFound = errors.New("rinha.yml not found")

// ColorMode selects when diagnostics use ANSI colors.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Config holds interpreter settings loaded from rinha.yml and CLI flags.
type Config struct {
	Path         string
	PrintNewline bool
	MaxDepth     int
	Color        ColorMode
	LogLevel     slog.Level
	ContextLines int
}

// DefaultConfig returns the settings used when no rinha.yml is present.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:     DefaultMaxDepth,
		Color:        ColorAuto,
		LogLevel:     slog.LevelWarn,
		ContextLines: 1,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	PrintNewline *bool   `yaml:"print_newline"`
	MaxDepth     *int    `yaml:"max_depth"`
	Color        *string `yaml:"color"`
	LogLevel     *string `yaml:"log_level"`
	ContextLines *int    `yaml:"context_lines"`
}

// LoadConfig parses a rinha.yml file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg, err := raw.toConfig(absPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cf configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	var errs ValidationError

	if cf.PrintNewline != nil {
		cfg.PrintNewline = *cf.PrintNewline
	}
	if cf.MaxDepth != nil {
		if *cf.MaxDepth <= 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be positive (got %d)", *cf.MaxDepth))
		} else {
			cfg.MaxDepth = *cf.MaxDepth
		}
	}
	if cf.Color != nil {
		mode := ColorMode(strings.ToLower(strings.TrimSpace(*cf.Color)))
		if !mode.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("color must be auto, always or never (got %q)", *cf.Color))
		} else {
			cfg.Color = mode
		}
	}
	if cf.LogLevel != nil {
		level, err := ParseLogLevel(*cf.LogLevel)
		if err != nil {
			errs.Issues = append(errs.Issues, err.Error())
		} else {
			cfg.LogLevel = level
		}
	}
	if cf.ContextLines != nil {
		if *cf.ContextLines < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("context_lines must not be negative (got %d)", *cf.ContextLines))
		} else {
			cfg.ContextLines = *cf.ContextLines
		}
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// ParseLogLevel accepts debug, info, warn or error.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level must be debug, info, warn or error (got %q)", value)
	}
	return level, nil
}

// FindConfig walks upward from start looking for rinha.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// DiscoverConfig loads the nearest rinha.yml above start, or the defaults
// when there is none.
func DiscoverConfig(start string) (*Config, error) {
	path, err := FindConfig(start)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return LoadConfig(path)
}

// UseColor resolves the color mode for the given output stream.
func (c *Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// RenderOptions derives diagnostic rendering options for the given stream.
func (c *Config) RenderOptions(f *os.File) RenderOptions {
	return RenderOptions{Color: c.UseColor(f), ContextLines: c.ContextLines}
}

// NewLogger builds the diagnostic logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
