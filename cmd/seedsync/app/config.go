package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/seedsync/internal/database"
	"github.com/agentstation/seedsync/pkg/constants"
	"github.com/agentstation/seedsync/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Project database
	Database database.Config

	// Run lock directory; empty uses the runlock default
	LockDir string

	// Logging configuration. LogLevel is the explicit --log-level flag,
	// EnvLogLevel the LOG_LEVEL setting, which ranks below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or .seedsync.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config file", "cannot parse "+v.ConfigFileUsed(), err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Database: database.Config{
			Driver:         v.GetString("db_driver"),
			URL:            v.GetString("db_url"),
			Host:           v.GetString("db_host"),
			Port:           v.GetInt("db_port"),
			Name:           v.GetString("db_name"),
			User:           v.GetString("db_user"),
			Password:       v.GetString("db_pass"),
			SSLMode:        v.GetString("db_sslmode"),
			Path:           v.GetString("db_path"),
			ConnectTimeout: v.GetDuration("db_connect_timeout"),
			QueryTimeout:   v.GetDuration("db_query_timeout"),
			Table:          v.GetString("projects_table"),
			PhaseColumn:    v.GetString("phase_column"),
			NameColumn:     v.GetString("name_column"),
			YearColumn:     v.GetString("year_column"),
			StatusColumn:   v.GetString("status_column"),
		},

		LockDir: v.GetString("lock_dir"),

		EnvLogLevel: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}

	return config, nil
}

// setDefaults registers every known key so AutomaticEnv can find it.
func setDefaults(v *viper.Viper) {
	defaults := database.DefaultConfig()

	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no-color", false)
	v.SetDefault("format", "")

	v.SetDefault("db_driver", defaults.Driver)
	v.SetDefault("db_url", "")
	v.SetDefault("db_host", "")
	v.SetDefault("db_port", defaults.Port)
	v.SetDefault("db_name", "")
	v.SetDefault("db_user", "")
	v.SetDefault("db_pass", "")
	v.SetDefault("db_sslmode", defaults.SSLMode)
	v.SetDefault("db_path", "")
	v.SetDefault("db_connect_timeout", defaults.ConnectTimeout)
	v.SetDefault("db_query_timeout", defaults.QueryTimeout)
	v.SetDefault("projects_table", defaults.Table)
	v.SetDefault("phase_column", defaults.PhaseColumn)
	v.SetDefault("name_column", defaults.NameColumn)
	v.SetDefault("year_column", defaults.YearColumn)
	v.SetDefault("status_column", defaults.StatusColumn)

	v.SetDefault("lock_dir", "")

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden,
// and .env.local fills whatever .env left unset.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
