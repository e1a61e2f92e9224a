package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Data source kinds for route queries.
const (
	SourceHTML     = "html"
	SourcePostgres = "postgres"
)

// Config holds the configuration of the courier binaries.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port for the monitoring server.
// - ProviderType: The geocoding provider (google, nominatim, visicom).
// - APIKey: The API key for the geocoding provider.
// - Workers: The number of concurrent workers for geocoding and route queries.
// - Interval: The duration between geocoding batches.
// - NameSuffix: Appended to every location name sent to the provider (e.g. ", Netherlands").
// - Source: Where route queries load locations from (html, postgres).
// - CoordinatesFile, ConnectionsFile: HTML tables used by the html source.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env             string
	Port            int
	ProviderType    string
	APIKey          string
	Workers         int
	Interval        time.Duration
	NameSuffix      string
	Source          string
	CoordinatesFile string
	ConnectionsFile string
	Database        PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// New returns a viper instance with defaults and COURIER_* environment binding.
// If COURIER_CONFIG names a file, it is read as well; environment wins over the file.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("courier")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("health_port", "8080")
	v.SetDefault("provider_type", "nominatim")
	v.SetDefault("provider_key", "")
	v.SetDefault("workers", "4")
	v.SetDefault("interval", "10m")
	v.SetDefault("name_suffix", "")
	v.SetDefault("source", SourceHTML)
	v.SetDefault("coordinates_file", "city-coordinates.html")
	v.SetDefault("connections_file", "from-to.html")

	for key, env := range map[string]string{
		"db.host":     "DB_HOST",
		"db.port":     "DB_PORT",
		"db.username": "DB_USERNAME",
		"db.password": "DB_PASSWORD",
		"db.name":     "DB_NAME",
	} {
		_ = v.BindEnv(key, env)
	}
	v.SetDefault("db.port", "5432")

	return v
}

// MustLoad loads the configuration and panics if a value cannot be parsed.
func MustLoad() *Config {
	return MustLoadFrom(New())
}

// MustLoadFrom builds a Config from v, e.g. after command line flags were bound to it.
func MustLoadFrom(v *viper.Viper) *Config {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file: " + err.Error())
		}
	}

	interval, err := time.ParseDuration(v.GetString("interval"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(v.GetString("health_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	source := v.GetString("source")
	if source != SourceHTML && source != SourcePostgres {
		panic("unsupported source in configuration, must be html or postgres")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            healthPort,
		ProviderType:    v.GetString("provider_type"),
		APIKey:          v.GetString("provider_key"),
		Workers:         workers,
		Interval:        interval,
		NameSuffix:      v.GetString("name_suffix"),
		Source:          source,
		CoordinatesFile: v.GetString("coordinates_file"),
		ConnectionsFile: v.GetString("connections_file"),
		Database: PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.username"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},
	}
}
