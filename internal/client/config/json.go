package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docvault/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// let absent keys keep the earlier value.
type jsonConfig struct {
	DataDir       *string `json:"data_dir"`
	StorageDriver *string `json:"storage_driver"`
	DatabaseDSN   *string `json:"database_dsn"`
	FilesBackend  *string `json:"files_backend"`
	S3Bucket      *string `json:"s3_bucket"`
	S3Prefix      *string `json:"s3_prefix"`
	S3Region      *string `json:"s3_region"`
	S3Endpoint    *string `json:"s3_endpoint"`
	S3AccessKey   *string `json:"s3_access_key"`
	S3SecretKey   *string `json:"s3_secret_key"`
	ShareDir      *string `json:"share_dir"`
	ShareCommand  *string `json:"share_command"`
	LogLevel      *string `json:"log_level"`
}

// parseJSON overlays cfg with values from the file named by -c/-config. It is
// a no-op when no file was requested.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.DataDir, jc.DataDir)
	set(&cfg.StorageDriver, jc.StorageDriver)
	set(&cfg.DatabaseDSN, jc.DatabaseDSN)
	set(&cfg.FilesBackend, jc.FilesBackend)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Prefix, jc.S3Prefix)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)
	set(&cfg.ShareDir, jc.ShareDir)
	set(&cfg.ShareCommand, jc.ShareCommand)
	set(&cfg.LogLevel, jc.LogLevel)

	return nil
}
