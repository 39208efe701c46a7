// Package config loads the pcmp configuration: the subject company, the
// peer table, exclusions and chart profiles.
//
// Values come from a YAML, JSON or TOML file. PCMP_ environment variables,
// also read from a .env file, override it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/etnz/peers"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultName is the configuration file looked up in the working directory
// when none is given.
const DefaultName = "pcmp"

// Config holds the whole configuration.
type Config struct {
	Subject  SubjectConfig   `mapstructure:"subject"`
	Source   SourceConfig    `mapstructure:"source"`
	Exclude  []string        `mapstructure:"exclude"`
	Currency string          `mapstructure:"currency"`
	Output   OutputConfig    `mapstructure:"output"`
	Profiles []ProfileConfig `mapstructure:"profiles"`
	Gemini   GeminiConfig    `mapstructure:"gemini"`
}

// SubjectConfig describes the subject company. Metrics accept numbers or
// text such as "20M" or "$1.5B".
type SubjectConfig struct {
	Name     string         `mapstructure:"name"`
	Industry string         `mapstructure:"industry"`
	Metrics  map[string]any `mapstructure:"metrics"`
}

// SourceConfig locates the peer table.
type SourceConfig struct {
	Path     string `mapstructure:"path"`
	Sheet    string `mapstructure:"sheet"`
	RowsPath string `mapstructure:"rows_path"`
	// Derive fills the per employee metrics when the table lacks them.
	Derive bool `mapstructure:"derive"`
}

// OutputConfig controls chart files.
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	Backend string `mapstructure:"backend"`
	Format  string `mapstructure:"format"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
}

// GeminiConfig configures chart commentary.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Load reads the configuration file at path. An empty path looks for
// pcmp.yaml (or .json, .toml) in the working directory and falls back to
// defaults when there is none.
func Load(path string) (*Config, error) {
	v := viper.New()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Could not load .env file: %v", err)
	}

	v.SetDefault("currency", peers.DefaultCurrency)
	v.SetDefault("source.path", "peers.csv")
	v.SetDefault("source.derive", true)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.backend", "chart")
	v.SetDefault("output.format", "png")
	v.SetDefault("output.width", 1200)
	v.SetDefault("output.height", 800)
	v.SetDefault("gemini.model", "gemini-2.5-pro")

	v.SetEnvPrefix("PCMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v, "subject.name", "subject.industry", "currency")
	bindEnv(v, "source.path", "source.sheet", "source.rows_path", "source.derive")
	bindEnv(v, "output.dir", "output.backend", "output.format", "output.width", "output.height")
	bindEnv(v, "gemini.model")
	if err := v.BindEnv("gemini.api_key", "PCMP_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"); err != nil {
		log.Printf("Could not bind env var for key gemini.api_key: %v", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &cfg, nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}

// SubjectRecord returns the subject as a record, with its derived metrics
// filled.
func (c *Config) SubjectRecord() (peers.Record, error) {
	s := c.Subject
	if s.Name == "" {
		return peers.Record{}, fmt.Errorf("no subject name in configuration")
	}
	r := peers.NewRecord(s.Name, s.Industry)
	for key, raw := range s.Metrics {
		f := peers.ParseField(key)
		v, err := metric(raw)
		if err != nil {
			return peers.Record{}, fmt.Errorf("subject metric %q: %w", key, err)
		}
		r = r.With(f, v)
	}
	return peers.Derive(r), nil
}

// metric converts a configuration value into a peers.Value.
func metric(raw any) (peers.Value, error) {
	var v peers.Value
	switch x := raw.(type) {
	case nil:
		return peers.Absent, nil
	case int:
		v = peers.V(x)
	case int64:
		v = peers.V(x)
	case float64:
		v = peers.V(x)
	case string:
		v = peers.ParseValue(x)
	default:
		return peers.Absent, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
	if v.IsAbsent() {
		return peers.Absent, fmt.Errorf("invalid number %v", raw)
	}
	return v, nil
}

// Exclusion returns the exclusion predicate of the configured names.
func (c *Config) Exclusion() peers.Exclusion {
	return peers.ExcludeNames(c.Exclude...)
}

// Builder returns a peers.Builder for the configured subject.
func (c *Config) Builder() (*peers.Builder, error) {
	subject, err := c.SubjectRecord()
	if err != nil {
		return nil, err
	}
	b := peers.NewBuilder(subject, c.Exclusion())
	b.Currency = c.Currency
	return b, nil
}
