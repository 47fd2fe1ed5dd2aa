package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Source kinds
const (
	SourceJSON     = "json"     // a single table directory (meta.json + data.json)
	SourceDatabase = "database" // a database directory of table directories
	SourceCSV      = "csv"      // one relation per CSV file
	SourcePostgres = "postgres" // tables of a live PostgreSQL database
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds all configuration for relprofile.
// Configuration can come from a YAML file or environment variables;
// environment variables override YAML values.
// Secrets (the PostgreSQL DSN) only come from the environment.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Profile ProfileConfig `yaml:"profile"`
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
}

// LogConfig controls the console logger and the optional Seq sink
type LogConfig struct {
	Level  string `yaml:"level" env:"RELPROFILE_LOG_LEVEL" env-default:"info"`
	SeqURL string `yaml:"seq_url" env:"RELPROFILE_SEQ_URL" env-default:""`
}

// ProfileConfig selects what to discover. Both UCC and IND discovery run
// unless skipped; cleanenv cannot tell a YAML false from an unset bool, so
// the switches are negative.
type ProfileConfig struct {
	SkipUCC     bool `yaml:"skip_ucc" env:"RELPROFILE_SKIP_UCC" env-default:"false"`
	SkipIND     bool `yaml:"skip_ind" env:"RELPROFILE_SKIP_IND" env-default:"false"`
	IncludeNary bool `yaml:"include_nary" env:"RELPROFILE_INCLUDE_NARY" env-default:"false"`
	Workers     int  `yaml:"workers" env:"RELPROFILE_WORKERS" env-default:"1"`
}

// SourceConfig says where relations are loaded from
type SourceConfig struct {
	Kind          string   `yaml:"kind" env:"RELPROFILE_SOURCE_KIND" env-default:"database"`
	Paths         []string `yaml:"paths" env:"RELPROFILE_SOURCE_PATHS" env-separator:","`
	CSVNullToken  string   `yaml:"csv_null_token" env:"RELPROFILE_CSV_NULL_TOKEN" env-default:""`
	CSVHeaderless bool     `yaml:"csv_headerless" env:"RELPROFILE_CSV_HEADERLESS" env-default:"false"`
	PostgresDSN   string   `yaml:"-" env:"RELPROFILE_POSTGRES_DSN"` // Secret - not in YAML
	Tables        []string `yaml:"tables" env:"RELPROFILE_SOURCE_TABLES" env-separator:","`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format      string `yaml:"format" env:"RELPROFILE_OUTPUT_FORMAT" env-default:"text"`
	Path        string `yaml:"path" env:"RELPROFILE_OUTPUT_PATH" env-default:""`
	MetricsPath string `yaml:"metrics_path" env:"RELPROFILE_METRICS_PATH" env-default:""`
}

// Load reads the YAML file at path with environment variable overrides
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv builds a configuration from defaults and environment variables only
func LoadFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects unknown kinds and formats and impossible worker counts
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceJSON, SourceDatabase, SourceCSV:
	case SourcePostgres:
		if c.Source.PostgresDSN == "" {
			return fmt.Errorf("source kind %q requires RELPROFILE_POSTGRES_DSN", SourcePostgres)
		}
		if len(c.Source.Tables) == 0 {
			return fmt.Errorf("source kind %q requires at least one table", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	if c.Profile.Workers < 1 {
		return fmt.Errorf("profile.workers must be at least 1, got %d", c.Profile.Workers)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured log level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}
