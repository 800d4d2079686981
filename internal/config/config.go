package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string  `mapstructure:"APP_ENV"`
	Port           string  `mapstructure:"PORT"`
	DatabaseURL    string  `mapstructure:"DATABASE_URL"`
	JWTSecret      string  `mapstructure:"JWT_SECRET"`
	TokenTTLHours  int     `mapstructure:"TOKEN_TTL_HOURS"`
	Domain         string  `mapstructure:"DOMAIN"`
	ClientURL      string  `mapstructure:"CLIENT_URL"`
	AllowedOrigins string  `mapstructure:"ALLOWED_ORIGINS"`
	StorageDriver  string  `mapstructure:"STORAGE_DRIVER"`
	MediaRoot      string  `mapstructure:"MEDIA_ROOT"`
	MediaURL       string  `mapstructure:"MEDIA_URL"`
	S3Bucket       string  `mapstructure:"S3_BUCKET"`
	S3Region       string  `mapstructure:"S3_REGION"`
	S3BaseURL      string  `mapstructure:"S3_BASE_URL"`
	MaxUploadMB    int64   `mapstructure:"MAX_UPLOAD_MB"`
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func LoadConfig() (config Config, err error) {
	v := viper.New()

	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_URL", "sqlite://photoshare.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL_HOURS", 168)
	v.SetDefault("DOMAIN", "")
	v.SetDefault("CLIENT_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("MEDIA_URL", "/media")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_BASE_URL", "")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is not set")
	}

	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER is s3")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.StorageDriver)
	}

	if c.TokenTTLHours <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Origins merges the development defaults with CLIENT_URL and the comma
// separated ALLOWED_ORIGINS list.
func (c Config) Origins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if c.ClientURL != "" {
		origins = append(origins, c.ClientURL)
	}

	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
