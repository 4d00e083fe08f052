package config

import (
	"os"
	"sync"
)

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		endpoint := os.Getenv("MINIO_HOST")
		if endpoint == "" {
			endpoint = "localhost:9000"
		}
		bucket := os.Getenv("MINIO_BUCKET")
		if bucket == "" {
			bucket = "datasets"
		}
		storageConfig = &StorageConfig{
			Endpoint:  endpoint,
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    bucket,
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		}
	})
	return storageConfig
}
