package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	AIProviderURL    string
	AIProviderKey    string
	AIDefaultModel   string
	PercentileFloor  int
	SweeperInterval  time.Duration
	AITimeoutSmall   time.Duration
	AITimeoutLarge   time.Duration
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AIProviderURL = GetEnv("AI_PROVIDER_URL", "https://generativelanguage.googleapis.com/v1beta/models")
	AIProviderKey = GetEnv("AI_PROVIDER_KEY")
	AIDefaultModel = GetEnv("AI_DEFAULT_MODEL", "gemini-1.5-flash")

	PercentileFloor = GetEnvInt("PERCENTILE_MIN_POPULATION", 10)
	SweeperInterval = GetEnvDuration("CAMPAIGN_SWEEPER_INTERVAL", 15*time.Minute)
	AITimeoutSmall = GetEnvDuration("AI_TIMEOUT_SMALL", 30*time.Second)
	AITimeoutLarge = GetEnvDuration("AI_TIMEOUT_LARGE", 90*time.Second)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	if AIProviderKey == "" {
		log.Println("⚠️ AI_PROVIDER_KEY not set, question generation will use the fallback bank")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
