package database

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/seedsync/pkg/constants"
	"github.com/agentstation/seedsync/pkg/errors"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// identifier matches a plain or schema-qualified SQL identifier.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Config describes how to reach the project table and which columns to read.
type Config struct {
	Driver string

	// URL, when set, is used verbatim as the Postgres DSN.
	URL      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	// Path is the SQLite database file.
	Path string

	ConnectTimeout time.Duration
	QueryTimeout   time.Duration

	Table        string
	PhaseColumn  string
	NameColumn   string
	YearColumn   string
	StatusColumn string
}

// DefaultConfig returns the settings of the production project database,
// minus host and credentials.
func DefaultConfig() Config {
	return Config{
		Driver:         constants.DefaultDriver,
		Port:           constants.DefaultPort,
		SSLMode:        constants.DefaultSSLMode,
		ConnectTimeout: constants.DefaultConnectTimeout,
		QueryTimeout:   constants.DefaultQueryTimeout,
		Table:          constants.DefaultProjectsTable,
		PhaseColumn:    constants.DefaultPhaseColumn,
		NameColumn:     constants.DefaultNameColumn,
		YearColumn:     constants.DefaultYearColumn,
		StatusColumn:   constants.DefaultStatusColumn,
	}
}

// Validate checks that the configuration can be used to build a connection
// and a query. Empty identifiers and timeouts are filled with defaults first.
func (c *Config) Validate() error {
	c.applyDefaults()

	switch c.Driver {
	case DriverPostgres:
		if c.URL == "" {
			if c.Host == "" {
				return errors.NewValidationError("db_host", c.Host, "is required for the postgres driver (or set db_url)")
			}
			if c.Name == "" {
				return errors.NewValidationError("db_name", c.Name, "is required for the postgres driver (or set db_url)")
			}
			if c.Port <= 0 || c.Port > 65535 {
				return errors.NewValidationError("db_port", c.Port, "must be between 1 and 65535")
			}
		}
	case DriverSQLite:
		if c.Path == "" {
			return errors.NewValidationError("db_path", c.Path, "is required for the sqlite driver")
		}
	default:
		return errors.NewValidationError("db_driver", c.Driver,
			fmt.Sprintf("unsupported driver, use %q or %q", DriverPostgres, DriverSQLite))
	}

	idents := []struct{ field, value string }{
		{"projects_table", c.Table},
		{"phase_column", c.PhaseColumn},
		{"name_column", c.NameColumn},
		{"year_column", c.YearColumn},
		{"status_column", c.StatusColumn},
	}
	for _, id := range idents {
		if !identifier.MatchString(id.value) {
			return errors.NewValidationError(id.field, id.value, "is not a valid SQL identifier")
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Driver == "" {
		c.Driver = d.Driver
	}
	c.Driver = strings.ToLower(c.Driver)
	if c.Driver == "pgx" || c.Driver == "postgresql" {
		c.Driver = DriverPostgres
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.SSLMode == "" {
		c.SSLMode = d.SSLMode
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = d.ConnectTimeout
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = d.QueryTimeout
	}
	if c.Table == "" {
		c.Table = d.Table
	}
	if c.PhaseColumn == "" {
		c.PhaseColumn = d.PhaseColumn
	}
	if c.NameColumn == "" {
		c.NameColumn = d.NameColumn
	}
	if c.YearColumn == "" {
		c.YearColumn = d.YearColumn
	}
	if c.StatusColumn == "" {
		c.StatusColumn = d.StatusColumn
	}
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	switch {
	case c.User != "" && c.Password != "":
		u.User = url.UserPassword(c.User, c.Password)
	case c.User != "":
		u.User = url.User(c.User)
	}
	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.ConnectTimeout > 0 {
		secs := int(c.ConnectTimeout.Round(time.Second) / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Target describes the database for logs and error messages. Passwords are
// masked.
func (c Config) Target() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return Redact(c.DSN())
}

// Redact masks the password in a URL-style DSN. Keyword/value DSNs are
// returned with any password=... pair masked.
func Redact(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
		return u.String()
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}
