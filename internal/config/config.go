package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	RefreshSecret   string
	Env             string
	RedisAddr       string
	RabbitURL       string
	RateLimitPerMin int
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first, if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "5000"),
		MongoURI:        getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGODB_DB", "siitecch"),
		JWTSecret:       getenv("JWT_SECRET", "default_secret_key"),
		RefreshSecret:   getenv("REFRESH_TOKEN_SECRET", "default_refresh_key"),
		Env:             getenv("NODE_ENV", "development"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RabbitURL:       os.Getenv("RABBIT_URL"),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "0")),
	}
}

func (c Config) Production() bool { return c.Env == "production" }

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
