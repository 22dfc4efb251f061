package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DefaultMaxUploadSize is the largest video accepted by the upload endpoint (500 MB).
const DefaultMaxUploadSize int64 = 500 * 1024 * 1024

type Config struct {
	ServerPort  string `validate:"required,numeric"`
	DBDriver    string `validate:"oneof=postgres mysql sqlite"`
	DatabaseURL string `validate:"required"`

	// JWTSecret has no default; startup fails without it.
	JWTSecret  string `validate:"required"`
	JWTTTL     time.Duration
	BcryptCost int `validate:"min=4,max=31"`

	VideoStoragePath string `validate:"required"`
	VideoURLPrefix   string `validate:"required,startswith=/"`
	MaxUploadSize    int64  `validate:"gt=0"`

	EnforceCourseOwnership bool
	ReconcileSchedule      string
	LogFormat              string `validate:"oneof=json text"`
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		ServerPort:             getEnv("PORT", "3000"),
		DBDriver:               getEnv("DB_DRIVER", DriverPostgres),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTTTL:                 getEnvDuration("JWT_TTL", 0),
		BcryptCost:             getEnvInt("BCRYPT_COST", 10),
		VideoStoragePath:       getEnv("VIDEO_STORAGE_PATH", "./uploads/videos"),
		VideoURLPrefix:         getEnv("VIDEO_URL_PREFIX", "/uploads/videos"),
		MaxUploadSize:          getEnvInt64("MAX_UPLOAD_SIZE", DefaultMaxUploadSize),
		EnforceCourseOwnership: getEnvBool("ENFORCE_COURSE_OWNERSHIP", false),
		ReconcileSchedule:      getEnv("RECONCILE_SCHEDULE", "@every 15m"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field, naming the env var that feeds it.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("invalid config: %s failed %q check", envNames[fe.Field()], fe.Tag())
}

var envNames = map[string]string{
	"ServerPort":       "PORT",
	"DBDriver":         "DB_DRIVER",
	"DatabaseURL":      "DATABASE_URL",
	"JWTSecret":        "JWT_SECRET",
	"BcryptCost":       "BCRYPT_COST",
	"VideoStoragePath": "VIDEO_STORAGE_PATH",
	"VideoURLPrefix":   "VIDEO_URL_PREFIX",
	"MaxUploadSize":    "MAX_UPLOAD_SIZE",
	"LogFormat":        "LOG_FORMAT",
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to int64: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return d
}
