package config

import "fmt"

// StorageConfig holds storage/persistence configuration.
type StorageConfig struct {
	Backend  string `env:"STORAGE_BACKEND" yaml:"backend" default:"local"` // "local" or "s3"
	LocalDir string `env:"STORAGE_LOCAL_DIR" yaml:"local_dir" default:"./data"`
	S3Bucket string `env:"STORAGE_S3_BUCKET" yaml:"s3_bucket"`
	S3Prefix string `env:"STORAGE_S3_PREFIX" yaml:"s3_prefix"`
	S3Region string `env:"STORAGE_S3_REGION" yaml:"s3_region"`
}

// Validate checks the storage section.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case "local":
		if c.LocalDir == "" {
			return fmt.Errorf("storage backend is local but no local directory is set")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("storage backend is s3 but no bucket is set")
		}
	default:
		return fmt.Errorf("unknown storage backend %q (expected local or s3)", c.Backend)
	}
	return nil
}
