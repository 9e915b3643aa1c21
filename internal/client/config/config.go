package config

import (
	"path/filepath"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FilesLocal = "local"
	FilesS3    = "s3"
)

// Config holds runtime settings for the docvault CLI.
type Config struct {
	DataDir       string
	StorageDriver string
	DatabaseDSN   string
	FilesBackend  string

	S3Bucket   string
	S3Prefix   string
	S3Region   string
	S3Endpoint string

	// Static S3 credentials, read from the JSON file only. When empty the
	// default AWS credential chain is used.
	S3AccessKey string
	S3SecretKey string

	ShareDir     string
	ShareCommand string

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "docvault-data"
	c.StorageDriver = DriverSQLite
	c.DatabaseDSN = ""
	c.FilesBackend = FilesLocal
	c.LogLevel = "info"
}

// DSN returns the configured DSN, or the SQLite file inside DataDir when none
// was given.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" || c.StorageDriver != DriverSQLite {
		return c.DatabaseDSN
	}
	return filepath.Join(c.DataDir, "docvault.db")
}

// CacheDir is where files are staged before being shared.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// LoadConfig constructs a Config from defaults, then the JSON file (if any),
// then command-line flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
