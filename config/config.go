// Package config reads converter settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/pcm720/glyphtbl/glyphtbl"
)

const (
	EnvThreshold = "GLYPHTBL_THRESHOLD"
	EnvInvert    = "GLYPHTBL_INVERT"
	EnvLogLevel  = "GLYPHTBL_LOG_LEVEL"
)

// Files loaded by the commands, earlier files take precedence
var DefaultFiles = []string{".env.local", ".env"}

type Config struct {
	Image    glyphtbl.ImageOptions
	LogLevel log.Level
}

// Load reads the given .env files, skipping missing ones, then parses the
// environment. Variables already set in the environment are not overridden.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, errors.Join(fmt.Errorf("failed to load %s", f), err)
		}
		log.Debugf("loaded %s", f)
	}
	return FromEnv()
}

// Parses the GLYPHTBL_* variables
func FromEnv() (Config, error) {
	cfg := Config{
		Image:    glyphtbl.DefaultImageOptions(),
		LogLevel: log.InfoLevel,
	}

	if v, ok := os.LookupEnv(EnvThreshold); ok {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return Config{}, fmt.Errorf("%s: threshold must be 0-255: %w", EnvThreshold, err)
		}
		cfg.Image.Threshold = uint8(n)
	}
	if v, ok := os.LookupEnv(EnvInvert); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvInvert, err)
		}
		cfg.Image.Invert = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// Applies the log level to the standard logger
func (c Config) Apply() {
	log.SetLevel(c.LogLevel)
}
