package config

import (
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/jaeyoung0509/orderedbatch"
)

// Sources accepted in Config.Source.
var Sources = []string{"sqs", "dynamodb", "kinesis"}

// Config is the stream-replay configuration file.
type Config struct {
	Source           string            `toml:"source"`
	Concurrency      int               `toml:"concurrency"`
	Mode             orderedbatch.Mode `toml:"mode"`
	LogLevel         string            `toml:"log_level"`
	BodyKeyPath      string            `toml:"body_key_path"`
	FailIdentifiers  []string          `toml:"fail_identifiers"`
	MetricsNamespace string            `toml:"metrics_namespace"`
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	return Config{
		Source:           "sqs",
		Concurrency:      10,
		Mode:             orderedbatch.ModePartial,
		LogLevel:         "info",
		MetricsNamespace: "orderedbatch",
	}
}

// Load decodes the TOML file at path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(Sources, c.Source) {
		return fmt.Errorf("source %q must be one of %v", c.Source, Sources)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Mode != orderedbatch.ModeFailFast && c.Mode != orderedbatch.ModePartial {
		return fmt.Errorf("mode %v is not supported", c.Mode)
	}
	if c.LogLevel == "" {
		return fmt.Errorf("log_level must be set")
	}
	return nil
}

// ShouldFail reports whether id is listed in fail_identifiers.
func (c *Config) ShouldFail(id string) bool {
	return slices.Contains(c.FailIdentifiers, id)
}
