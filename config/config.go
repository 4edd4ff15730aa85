package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`  // e.g., ":8080"
	AppEnv         string `mapstructure:"APP_ENV"`         // "production" switches gin to release mode
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"` // Comma separated list of browser origins, "*" for any

	// AI Configuration
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`  // Default key; clients may send their own
	GeminiBaseURL string `mapstructure:"GEMINI_BASE_URL"` // OpenAI-compatible endpoint
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`    // e.g., "gemini-2.5-flash"

	// Font Configuration
	FontPath string `mapstructure:"FONT_PATH"` // Local TTF/OTF, takes precedence over FONT_URL
	FontURL  string `mapstructure:"FONT_URL"`  // Remote font fetched at start-up

	// Output Configuration
	OutputDir string `mapstructure:"OUTPUT_DIR"` // Where artifact bundles are written
	LogFile   string `mapstructure:"LOG_FILE"`   // Optional rotating log file
}

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultFontURL       = "https://cdn.jsdelivr.net/gh/rastikerdar/vazirmatn@v33.003/fonts/TTF/Vazirmatn-Regular.ttf"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_BASE_URL", DefaultGeminiBaseURL)
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("FONT_PATH", "")
	v.SetDefault("FONT_URL", DefaultFontURL)
	v.SetDefault("OUTPUT_DIR", "tmp")
	v.SetDefault("LOG_FILE", "")
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")

	setDefaults(v)
	v.AutomaticEnv() // Read environment variables that match keys

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.GeminiAPIKey == "" {
		log.Println("WARN: GEMINI_API_KEY is not set. Requests must carry their own API key.")
	}
	if config.FontPath == "" && config.FontURL == "" {
		log.Println("WARN: neither FONT_PATH nor FONT_URL is set. SVG generation will be unavailable.")
	}

	return
}

// Origins splits AllowedOrigins into a clean list.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}
