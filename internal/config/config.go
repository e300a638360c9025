// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/watimage-mcp/internal/pipeline"
)

// Environment variables read by Load.
const (
	EnvLogLevel    = "WATIMAGE_LOG_LEVEL"
	EnvQuality     = "WATIMAGE_QUALITY"
	EnvCompression = "WATIMAGE_COMPRESSION"
	EnvMaxPixels   = "WATIMAGE_MAX_PIXELS"
)

// Config holds the server settings.
type Config struct {
	// LogLevel is "debug" for verbose logging; anything else is quiet.
	LogLevel string

	// Quality is the default JPEG/GIF quality, 0-100.
	Quality int

	// Compression is the default PNG compression level, 0-9.
	Compression int

	// MaxPixels caps decoded image size. 0 disables the cap.
	MaxPixels int
}

// Debug reports whether verbose logging is on.
func (c *Config) Debug() bool { return strings.EqualFold(c.LogLevel, "debug") }

// PipelineOptions converts the settings for pipeline.New.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Quality:     c.Quality,
		Compression: c.Compression,
		MaxPixels:   c.MaxPixels,
		Debug:       c.Debug(),
	}
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Missing files are ignored and variables already set in the
// environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}

	defaults := pipeline.DefaultOptions()
	cfg := &Config{LogLevel: os.Getenv(EnvLogLevel)}

	var err error
	if cfg.Quality, err = intEnv(EnvQuality, defaults.Quality, 0, 100); err != nil {
		return nil, err
	}
	if cfg.Compression, err = intEnv(EnvCompression, defaults.Compression, 0, 9); err != nil {
		return nil, err
	}
	if cfg.MaxPixels, err = intEnv(EnvMaxPixels, defaults.MaxPixels, 0, int(^uint(0)>>1)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intEnv(key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s: %d not in %d-%d", key, v, lo, hi)
	}
	return v, nil
}
