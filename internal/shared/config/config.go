package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	AppName         string
	Debug           bool
	CORSAllowOrigin []string
	OpenAIToken     string
	OpenAIModel     string
	GeminiToken     string
	GeminiModel     string
}

// Load reads configuration from environment variables with sensible defaults.
// A malformed DEBUG value is an error rather than a silent default.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	debug := true
	if raw := strings.TrimSpace(os.Getenv("DEBUG")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("DEBUG must be a boolean, got %q", raw)
		}
		debug = parsed
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGODB_DB", "pathoai"),
		AppName:         getEnv("APP_NAME", "PathoAi API"),
		Debug:           debug,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		OpenAIToken:     getEnv("OPENAI_TOKEN", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiToken:     getEnv("GEMINI_TOKEN", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
	}, nil
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
