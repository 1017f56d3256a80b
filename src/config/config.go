package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"crypto-insight/src/helpers"
	"crypto-insight/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Environment variable names recognized as overrides. These are also the key
// names reported back when a required value is missing.
const (
	EnvServerHostname = "WAREHOUSE_SERVER_HOSTNAME"
	EnvHTTPPath       = "WAREHOUSE_HTTP_PATH"
	EnvAccessToken    = "WAREHOUSE_ACCESS_TOKEN"
	EnvCatalog        = "WAREHOUSE_CATALOG"
	EnvSchema         = "WAREHOUSE_SCHEMA"
	EnvDriver         = "WAREHOUSE_DRIVER"
	EnvDSN            = "WAREHOUSE_DSN"
	EnvDBPath         = "WAREHOUSE_DB_PATH"
)

// identRegex limits catalog/schema identifiers to plain SQL names; they are
// spliced into query text, so nothing else is allowed through.
var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig builds the configuration from an optional YAML file, a .env file
// when present, and environment variable overrides, then validates it.
func NewConfig(configPath string) (*Config, error) {
	var modelConfig models.MConfig

	// 1. Read the YAML file content if one exists
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &modelConfig); err != nil {
				return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
	}

	config := &Config{MConfig: &modelConfig}

	// 2. Environment overrides (.env is optional, matching local dev setups)
	_ = godotenv.Load()
	config.applyEnv()
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() {
	w := &c.Warehouse
	setIfEnv(&w.Driver, EnvDriver)
	setIfEnv(&w.ServerHostname, EnvServerHostname)
	setIfEnv(&w.HTTPPath, EnvHTTPPath)
	setIfEnv(&w.AccessToken, EnvAccessToken)
	setIfEnv(&w.Catalog, EnvCatalog)
	setIfEnv(&w.Schema, EnvSchema)
	setIfEnv(&w.DSN, EnvDSN)
	setIfEnv(&w.DBPath, EnvDBPath)

	if v, ok := os.LookupEnv("PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
}

func setIfEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "crypto-insight"
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8090
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Warehouse.Driver == "" {
		c.Warehouse.Driver = "databricks"
	}
	if c.Warehouse.Catalog == "" {
		c.Warehouse.Catalog = "demo_catalog"
	}
	if c.Warehouse.Schema == "" {
		c.Warehouse.Schema = "demo_schema"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 60
	}
	if c.Dashboard.MinHoursBack == 0 {
		c.Dashboard.MinHoursBack = 6
	}
	if c.Dashboard.MaxHoursBack == 0 {
		c.Dashboard.MaxHoursBack = 96
	}
	if c.Dashboard.DefaultHoursBack == 0 {
		c.Dashboard.DefaultHoursBack = 48
	}
}

// -----------------------------------------------------------------------------

// Validate checks general settings and the warehouse connection values.
// Missing required connection values produce a *helpers.ConfigurationError
// listing exactly the absent key names; the caller must not issue any query
// after that.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d", c.Port)
	}
	if !identRegex.MatchString(c.Warehouse.Catalog) {
		return fmt.Errorf("invalid catalog identifier: %q", c.Warehouse.Catalog)
	}
	if !identRegex.MatchString(c.Warehouse.Schema) {
		return fmt.Errorf("invalid schema identifier: %q", c.Warehouse.Schema)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache ttl must be greater than 0")
	}
	d := c.Dashboard
	if d.MinHoursBack <= 0 || d.MaxHoursBack < d.MinHoursBack {
		return fmt.Errorf("invalid hours-back bounds: [%d, %d]", d.MinHoursBack, d.MaxHoursBack)
	}
	if d.DefaultHoursBack < d.MinHoursBack || d.DefaultHoursBack > d.MaxHoursBack {
		return fmt.Errorf("default hours-back %d outside [%d, %d]", d.DefaultHoursBack, d.MinHoursBack, d.MaxHoursBack)
	}

	var missing []string
	switch c.Warehouse.Driver {
	case "databricks":
		if c.Warehouse.ServerHostname == "" {
			missing = append(missing, EnvServerHostname)
		}
		if c.Warehouse.HTTPPath == "" {
			missing = append(missing, EnvHTTPPath)
		}
		if c.Warehouse.AccessToken == "" {
			missing = append(missing, EnvAccessToken)
		}
	case "postgres":
		if c.Warehouse.DSN == "" {
			missing = append(missing, EnvDSN)
		}
	case "sqlite":
		if c.Warehouse.DBPath == "" {
			missing = append(missing, EnvDBPath)
		}
	default:
		return fmt.Errorf("unsupported warehouse driver: %q", c.Warehouse.Driver)
	}

	if len(missing) > 0 {
		return helpers.NewConfigurationError(missing)
	}
	return nil
}
