package cfg

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LimitsConfiguration sizes the per-event storage handed to a collector.
// Every value must cover the worst case of the event schema.
type LimitsConfiguration struct {
	ScratchBytes int `toml:"scratch_bytes"`
	Descriptors  int `toml:"descriptors"`
	Pins         int `toml:"pins"`
}

type Configuration struct {
	Limits   LimitsConfiguration `toml:"limits"`
	LogLevel string              `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Limits: LimitsConfiguration{
			ScratchBytes: 128,
			Descriptors:  16,
			Pins:         8,
		},
		LogLevel: "info",
	}
}

// Load reads configPath over the defaults. A missing file keeps the defaults.
func Load(configPath string) (*Configuration, error) {
	config := Default()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			log.Info().Str("path", configPath).Msg("Loading configuration")
			if _, err := toml.DecodeFile(configPath, config); err != nil {
				return nil, fmt.Errorf("failed to decode config: %w", err)
			}
		} else {
			log.Warn().Str("path", configPath).Msg("Config file not found, using defaults")
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Configuration) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func (l LimitsConfiguration) Validate() error {
	if l.ScratchBytes < 1 {
		return fmt.Errorf("scratch_bytes must be >= 1")
	}
	if l.Descriptors < 1 {
		return fmt.Errorf("descriptors must be >= 1")
	}
	if l.Pins < 0 {
		return fmt.Errorf("pins must be >= 0")
	}
	if l.Pins > l.Descriptors {
		return fmt.Errorf("pins (%d) cannot exceed descriptors (%d)", l.Pins, l.Descriptors)
	}
	return nil
}

// ApplyLogLevel sets the global zerolog level from the configuration.
func (c *Configuration) ApplyLogLevel() error {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
