// Package config loads runtime configuration for the docvault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string      data directory (database, documents, share cache)
//	-s string      key-value storage driver: sqlite | postgres
//	-dsn string    database DSN (defaults to <data dir>/docvault.db for sqlite)
//	-f string      companion file backend: local | s3
//	-bucket, -prefix, -region, -endpoint   S3 settings for -f s3
//	-share string  directory documents are exported to when shared
//	-open string   command used to hand a shared file to the desktop
//	-l string      log level: debug | info | warn | error
//
// # JSON schema
//
//	{
//	  "data_dir": "/home/me/.docvault",
//	  "storage_driver": "sqlite",
//	  "files_backend": "local",
//	  "share_dir": "/home/me/Shared",
//	  "log_level": "info"
//	}
//
// Keys missing from the JSON file keep their default values.
package config
