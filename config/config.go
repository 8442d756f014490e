// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

type DataConfig struct {
	// ManifestURL points at the JSON manifest listing bundle URLs per data
	// format version.
	ManifestURL string `yaml:"manifestURL" validate:"required,url"`

	// Version selects which entry of the manifest to download, e.g. "v2".
	Version string `yaml:"version" validate:"required"`

	// RefreshIntervalMins is how often to poll the manifest for a new
	// bundle.
	RefreshIntervalMins int `yaml:"refreshIntervalMins" validate:"gt=0"`

	// Timezone is the IANA name of the timezone timetables are written in.
	Timezone string `yaml:"timezone" validate:"required"`
}

type APIConfig struct {
	// MaxDepartures caps the count parameter of departure queries.
	MaxDepartures int `yaml:"maxDepartures" validate:"gt=0"`

	// MaxQueryDays caps how far from the current time, in days either way,
	// departures may be queried.
	MaxQueryDays int `yaml:"maxQueryDays" validate:"gt=0"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	API    APIConfig    `yaml:"api"`
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Data.RefreshIntervalMins) * time.Minute
}

// Load reads and validates a config file. Absent optional values get
// defaults before validation runs.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates config file contents.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: 3001},
		Data:   DataConfig{RefreshIntervalMins: 30, Timezone: "Australia/Melbourne"},
		API:    APIConfig{MaxDepartures: 50, MaxQueryDays: 100},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Data.Timezone); err != nil {
		return nil, fmt.Errorf("validating config: unknown timezone %q", cfg.Data.Timezone)
	}

	return cfg, nil
}
