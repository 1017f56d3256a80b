package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name"`
	Host      string           `yaml:"host"`
	Port      int              `yaml:"port"`
	LogLevel  string           `yaml:"log_level"`
	Warehouse MWarehouseConfig `yaml:"warehouse"`
	Cache     MCacheConfig     `yaml:"cache"`
	Dashboard MDashboardConfig `yaml:"dashboard"`
}

type MWarehouseConfig struct {
	// Driver selects the warehouse backend: "databricks" (default),
	// "postgres", or "sqlite" for the local demo.
	Driver         string `yaml:"driver"`
	ServerHostname string `yaml:"server_hostname"`
	HTTPPath       string `yaml:"http_path"`
	AccessToken    string `yaml:"access_token"`
	DSN            string `yaml:"dsn"`     // postgres only
	DBPath         string `yaml:"db_path"` // sqlite only
	Catalog        string `yaml:"catalog"`
	Schema         string `yaml:"schema"`
}

type MCacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type MDashboardConfig struct {
	DefaultHoursBack int `yaml:"default_hours_back"`
	MinHoursBack     int `yaml:"min_hours_back"`
	MaxHoursBack     int `yaml:"max_hours_back"`
}
