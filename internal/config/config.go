package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Catalog Catalog `mapstructure:"catalog"`
	Match   Match   `mapstructure:"match"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration.
type App struct {
	DataDir string `mapstructure:"data_dir"`
}

// AI holds LLM configuration.
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Catalog holds geographic catalog API configuration.
type Catalog struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout string `mapstructure:"timeout"`
}

// Match holds the matcher thresholds. Defaults mirror match.DefaultConfig;
// overriding them here lets an editor tune auto-acceptance per project.
type Match struct {
	MinSuggestionThreshold    float64 `mapstructure:"min_suggestion_threshold"`
	AutoMatchThreshold        float64 `mapstructure:"auto_match_threshold"`
	MediumConfidenceThreshold float64 `mapstructure:"medium_confidence_threshold"`
	HighConfidenceThreshold   float64 `mapstructure:"high_confidence_threshold"`
}

// Logging holds logging configuration.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from .env, the config file and environment
// variables, in the usual viper precedence.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".gazetteer")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

func setDefaults() {
	viper.SetDefault("app.data_dir", ".gazetteer-cache")

	viper.SetDefault("ai.gemini.model", "gemini-1.5-flash-latest")
	viper.SetDefault("ai.gemini.timeout", "30s")

	viper.SetDefault("catalog.base_url", "")
	viper.SetDefault("catalog.timeout", "15s")

	viper.SetDefault("match.min_suggestion_threshold", 0.30)
	viper.SetDefault("match.auto_match_threshold", 0.60)
	viper.SetDefault("match.medium_confidence_threshold", 0.75)
	viper.SetDefault("match.high_confidence_threshold", 0.90)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// bindEnvironmentVariables sets up flexible environment variable binding.
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("catalog.api_key", []string{
		"CATALOG_API_KEY",
		"GAZETTEER_CATALOG_API_KEY",
	})

	bindEnvKeys("catalog.base_url", []string{
		"CATALOG_BASE_URL",
		"GAZETTEER_CATALOG_BASE_URL",
	})
}

// bindEnvKeys binds multiple environment variable names to a config key.
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if err := viper.BindEnv(configKey, envKey); err != nil {
			fmt.Printf("Warning: Failed to bind %s: %v\n", envKey, err)
		}
	}
}

func validateConfig(config *Config) error {
	thresholds := map[string]float64{
		"match.min_suggestion_threshold":    config.Match.MinSuggestionThreshold,
		"match.auto_match_threshold":        config.Match.AutoMatchThreshold,
		"match.medium_confidence_threshold": config.Match.MediumConfidenceThreshold,
		"match.high_confidence_threshold":   config.Match.HighConfidenceThreshold,
	}
	for key, value := range thresholds {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %f", key, value)
		}
	}
	if config.Match.MinSuggestionThreshold > config.Match.AutoMatchThreshold {
		return fmt.Errorf("match.min_suggestion_threshold (%f) must not exceed match.auto_match_threshold (%f)",
			config.Match.MinSuggestionThreshold, config.Match.AutoMatchThreshold)
	}
	if config.Match.MediumConfidenceThreshold > config.Match.HighConfidenceThreshold {
		return fmt.Errorf("match.medium_confidence_threshold (%f) must not exceed match.high_confidence_threshold (%f)",
			config.Match.MediumConfidenceThreshold, config.Match.HighConfidenceThreshold)
	}

	for _, key := range []string{"ai.gemini.timeout", "catalog.timeout"} {
		raw := viper.GetString(key)
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("%s is not a valid duration: %w", key, err)
		}
	}

	return nil
}

// CatalogTimeout returns the parsed catalog request timeout.
func (c *Config) CatalogTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Catalog.Timeout); err == nil {
		return d
	}
	return 15 * time.Second
}
