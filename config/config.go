package config

import (
	"os"
	"time"
)

type Config struct {
	HttpPort string

	// external backends
	InferenceBaseURL string // FastAPI model backend
	GeocodeBaseURL   string // Nominatim
	GeocodeRegion    string // appended to forward-geocode queries
	AuthVerifyURL    string // identity provider token check

	// S3/MinIO
	BucketEndpoint  string
	BucketAccessID  string
	BucketAccessKey string
	BucketName      string
	BucketRegion    string
	UseSSL          bool   // MinIO: false, S3: true
	StorageType     string // "minio" or "s3"

	// Redis
	RedisURL      string
	RedisPassword string

	// Postgres
	Host     string
	User     string
	Password string
	DBName   string
	Port     string

	// others
	UploadTimeout time.Duration
	MaxFileSize   int64
	StagingTTL    time.Duration
	ConsentTTL    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		HttpPort:         os.Getenv("PORT"),
		InferenceBaseURL: getEnv("INFERENCE_API", "http://127.0.0.1:8000"),
		GeocodeBaseURL:   getEnv("GEOCODE_API", "https://nominatim.openstreetmap.org"),
		GeocodeRegion:    getEnv("GEOCODE_REGION", "India"),
		AuthVerifyURL:    os.Getenv("AUTH_VERIFY_URL"),
		BucketEndpoint:   os.Getenv("BUCKET_ENDPOINT"),
		BucketAccessID:   os.Getenv("BUCKET_ACCESS_ID"),
		BucketAccessKey:  os.Getenv("BUCKET_ACCESS_KEY"),
		BucketName:       os.Getenv("BUCKET_NAME"),
		BucketRegion:     os.Getenv("BUCKET_REGION"),
		UseSSL:           os.Getenv("BUCKET_USE_SSL") == "true",
		StorageType:      os.Getenv("STORAGE_TYPE"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		Host:             os.Getenv("PG_HOST"),
		User:             os.Getenv("PG_USER"),
		Password:         os.Getenv("PG_PASSWORD"),
		DBName:           os.Getenv("PG_DB"),
		Port:             os.Getenv("PG_PORT"),
		UploadTimeout:    15 * time.Minute,
		MaxFileSize:      50 * 1024 * 1024,
		StagingTTL:       30 * time.Minute,
		ConsentTTL:       12 * time.Hour,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
