package app

import (
	"strings"

	"github.com/overair/overair-backend/internal/platform/envutil"
)

const defaultMaxUploadBytes = 500 << 20 // 500 MiB, matches the client contract

type Config struct {
	Port           string
	AppEnv         string
	LogMode        string
	MaxUploadBytes int64
}

func LoadConfig() Config {
	appEnv := strings.ToLower(envutil.Str("APP_ENV", "development"))
	return Config{
		Port:           envutil.Str("PORT", "8080"),
		AppEnv:         appEnv,
		LogMode:        envutil.Str("LOG_MODE", appEnv),
		MaxUploadBytes: envutil.Int64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}
}

func (c Config) Production() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}
