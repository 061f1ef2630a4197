// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package config loads texel's runtime configuration from
// the environment.
// Variables defined in a .env file in the working
// directory are taken into account.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
)

// Environment variables.
const (
	// Name (or part of the name) of the driver to load.
	// Empty means any driver.
	EnvDriver = "TEXEL_DRIVER"
	// Log level, as understood by logrus.ParseLevel.
	EnvLogLevel = "TEXEL_LOG_LEVEL"
	// Whether new textures use immutable storage by
	// default.
	EnvImmutable = "TEXEL_IMMUTABLE"
	// Number of samples of multisample textures.
	EnvSamples = "TEXEL_SAMPLES"
)

// ErrInvalid means that an environment variable holds a
// malformed value.
var ErrInvalid = errors.New("config: invalid value")

// Config is the runtime configuration.
type Config struct {
	Driver    string
	LogLevel  string
	Immutable bool
	Samples   int
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel:  "warning",
		Immutable: true,
		Samples:   4,
	}
}

// Load reads the configuration from the environment.
// Unset or empty variables take their default values.
func Load() (Config, error) {
	c := Default()
	c.Driver = envy.Get(EnvDriver, c.Driver)
	if v := envy.Get(EnvLogLevel, ""); v != "" {
		c.LogLevel = v
	}
	if v := envy.Get(EnvImmutable, ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalid, EnvImmutable, v)
		}
		c.Immutable = b
	}
	if v := envy.Get(EnvSamples, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrInvalid, EnvSamples, v)
		}
		c.Samples = n
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that c holds valid values.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	if c.Samples < 1 || c.Samples&(c.Samples-1) != 0 {
		return fmt.Errorf("%w: samples %d (must be a power of two)", ErrInvalid, c.Samples)
	}
	return nil
}

// Level returns the parsed log level.
// It returns logrus.WarnLevel if c.LogLevel is malformed.
func (c Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return l
}
