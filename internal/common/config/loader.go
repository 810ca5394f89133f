package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads configs/config.yaml, merges the environment-specific section,
// expands ${VAR} references and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("ATTENDANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	env := v.GetString("app.environment")
	if env == "" {
		env = os.Getenv("APP_ENV")
	}
	if env != "" && v.IsSet("environments."+env) {
		if err := v.MergeConfigMap(v.GetStringMap("environments." + env)); err != nil {
			return nil, fmt.Errorf("merging %s overrides: %w", env, err)
		}
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads a .env file if present. Missing files are fine.
func loadEnvFile() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bistro-attendant")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.database", "bistro")
	v.SetDefault("database.postgres.username", "postgres")
	v.SetDefault("database.postgres.ssl_mode", "disable")
	v.SetDefault("database.postgres.max_conns", 10)

	v.SetDefault("database.redis.host", "localhost")
	v.SetDefault("database.redis.port", 6379)
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("database.redis.cache_ttl", 5*time.Minute)

	v.SetDefault("genai.request_timeout", 30*time.Second)
	v.SetDefault("genai.max_retries", 2)
	v.SetDefault("genai.extract_model", "gpt-4o-mini")
	v.SetDefault("genai.rewrite_model", "gpt-4o-mini")

	v.SetDefault("business.timezone", "America/Sao_Paulo")
	v.SetDefault("business.reservation_link", "https://linktr.ee/bitrodacasa")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// expandEnvVars rewrites ${VAR} placeholders in every string setting.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)
		s, ok := val.(string)
		if !ok {
			continue
		}
		expanded := envVarPattern.ReplaceAllStringFunc(s, func(m string) string {
			name := envVarPattern.FindStringSubmatch(m)[1]
			if env, found := os.LookupEnv(name); found {
				return env
			}
			return m
		})
		if expanded != s {
			v.Set(key, expanded)
		}
	}
}

func validateConfig(cfg *Config) error {
	var missing []string
	if cfg.Server.ListenAddr == "" {
		missing = append(missing, "server.listen_addr")
	}
	if cfg.Database.Postgres.Host == "" {
		missing = append(missing, "database.postgres.host")
	}
	if cfg.GenAI.BaseURL == "" {
		missing = append(missing, "genai.base_url")
	}
	if cfg.Business.Timezone == "" {
		missing = append(missing, "business.timezone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if _, err := time.LoadLocation(cfg.Business.Timezone); err != nil {
		return fmt.Errorf("invalid business.timezone %q: %w", cfg.Business.Timezone, err)
	}
	return nil
}
