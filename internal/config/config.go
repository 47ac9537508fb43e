package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort         string
	DBDriver           string
	MySQLDSN           string
	PostgresDSN        string
	AutoMigrate        bool
	ResetDB            bool
	RedisAddr          string
	RedisDB            int
	RedisPass          string
	ItemCacheTTL       time.Duration
	CORSAllowedOrigins []string
	SwaggerHost        string
	APIBaseURL         string
	SeedFile           string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present; real
// environment variables take precedence over it.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env file: %v", err)
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		MySQLDSN:           getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/inventory?charset=utf8mb4&parseTime=True&loc=Local"),
		PostgresDSN:        getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable"),
		AutoMigrate:        getEnvBool("AUTO_MIGRATE", true),
		ResetDB:            getEnvBool("RESET_DB", false),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		ItemCacheTTL:       time.Duration(getEnvInt("ITEM_CACHE_TTL_SECONDS", 300)) * time.Second,
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		SwaggerHost:        os.Getenv("SWAGGER_HOST"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8080/api"),
		SeedFile:           getEnv("SEED_FILE", "seed/food_items.json"),
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.PostgresDSN
	}
	return c.MySQLDSN
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
