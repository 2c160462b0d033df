package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL       string
	LogLevel          string
	Debug             bool
	ServiceName       string
	Environment       string
	Port              string
	JwtSecret         string
	JwtRefreshSecret  string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	AllowedOrigins    []string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnectAttempts int
	AuthRateLimit     float64
	AuthRateBurst     int
	RunMigrations     bool
	Location          *time.Location
}

// LoadConfig reads the environment, seeding it from a .env file when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	databaseUrl := os.Getenv("DATABASE_URL")
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	jwtRefreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if jwtRefreshSecret == "" {
		return nil, errors.New("JWT_REFRESH_SECRET is required")
	}
	if jwtRefreshSecret == jwtSecret {
		return nil, errors.New("JWT_REFRESH_SECRET must differ from JWT_SECRET")
	}

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = []string{}
		for _, origin := range strings.Split(ao, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	location := time.UTC
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, errors.New("TIMEZONE is not a valid IANA zone")
		}
		location = loc
	}

	return &Config{
		DatabaseURL:       databaseUrl,
		JwtSecret:         jwtSecret,
		JwtRefreshSecret:  jwtRefreshSecret,
		LogLevel:          getString("LOG_LEVEL", "info"),
		Debug:             getBool("DEBUG", false),
		ServiceName:       getString("SERVICE_NAME", "community-api"),
		Environment:       getString("ENVIRONMENT", "development"),
		Port:              getString("PORT", "8080"),
		AccessTokenTTL:    getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:   getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		AllowedOrigins:    allowedOrigins,
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
		DBConnectAttempts: getInt("DB_CONNECT_ATTEMPTS", 5),
		AuthRateLimit:     getFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst:     getInt("AUTH_RATE_BURST", 10),
		RunMigrations:     getBool("RUN_MIGRATIONS", true),
		Location:          location,
	}, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
