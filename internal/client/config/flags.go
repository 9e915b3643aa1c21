package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docvault/internal/flagx"
)

var knownFlags = []string{
	"-d", "-s", "-dsn", "-f",
	"-bucket", "-prefix", "-region", "-endpoint",
	"-share", "-open", "-l",
}

// parseFlags populates cfg from command-line flags. Arguments belonging to
// other components (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("docvault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "key-value storage driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.FilesBackend, "f", cfg.FilesBackend, "companion file backend (local|s3)")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Prefix, "prefix", cfg.S3Prefix, "S3 key prefix")
	fs.StringVar(&cfg.S3Region, "region", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "endpoint", cfg.S3Endpoint, "S3 endpoint URL")
	fs.StringVar(&cfg.ShareDir, "share", cfg.ShareDir, "directory shared documents are exported to")
	fs.StringVar(&cfg.ShareCommand, "open", cfg.ShareCommand, "command used to open shared files")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	switch cfg.StorageDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverPostgres && cfg.DatabaseDSN == "" {
		return fmt.Errorf("postgres storage requires -dsn")
	}
	switch cfg.FilesBackend {
	case FilesLocal, FilesS3:
	default:
		return fmt.Errorf("unsupported files backend %q", cfg.FilesBackend)
	}
	if cfg.FilesBackend == FilesS3 && cfg.S3Bucket == "" {
		return fmt.Errorf("s3 files backend requires -bucket")
	}
	return nil
}
