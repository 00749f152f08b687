package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/terraincognita07/healthlog/internal/db"
	"github.com/terraincognita07/healthlog/internal/security"
	"gorm.io/gorm"
)

const (
	InsecureSecretPlaceholder = "change_me_in_production"
	minimumSecretKeyLength    = 32
)

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses the insecure placeholder")
	ErrSecretKeyTooShort = fmt.Errorf("SECRET_KEY must be at least %d characters", minimumSecretKeyLength)
)

type Config struct {
	TimeZone      string
	Location      *time.Location
	Port          string
	SecretKey     string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	ExportDir     string
	ExportWorkers int
	KeyDerivation security.KeyDerivation
	SessionTTL    time.Duration
	CookieSecure  bool
	ConfigFile    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tz", "UTC")
	v.SetDefault("port", "8080")
	v.SetDefault("secret_key", InsecureSecretPlaceholder)
	v.SetDefault("db_driver", db.DriverSQLite)
	v.SetDefault("db_path", filepath.Join("data", "healthlog.db"))
	v.SetDefault("database_url", "")
	v.SetDefault("export_dir", filepath.Join("data", "exports"))
	v.SetDefault("export_workers", 2)
	v.SetDefault("key_derivation", string(security.KeyDerivationSHA256))
	v.SetDefault("session_ttl", "168h")
	v.SetDefault("cookie_secure", false)
}

// Load layers defaults, healthlog.yaml, .env and the process environment, in
// increasing priority. configFile overrides the yaml search path when set.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("healthlog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "healthlog"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		TimeZone:      strings.TrimSpace(v.GetString("tz")),
		Port:          strings.TrimSpace(v.GetString("port")),
		SecretKey:     v.GetString("secret_key"),
		DBDriver:      strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
		DBPath:        v.GetString("db_path"),
		DatabaseURL:   v.GetString("database_url"),
		ExportDir:     v.GetString("export_dir"),
		ExportWorkers: v.GetInt("export_workers"),
		CookieSecure:  v.GetBool("cookie_secure"),
		ConfigFile:    v.ConfigFileUsed(),
	}

	cfg.Location = loadLocation(cfg.TimeZone)

	derivation, err := security.ParseKeyDerivation(v.GetString("key_derivation"))
	if err != nil {
		return Config{}, err
	}
	cfg.KeyDerivation = derivation

	ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString("session_ttl")))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TTL %q", v.GetString("session_ttl"))
	}
	cfg.SessionTTL = ttl

	switch cfg.DBDriver {
	case db.DriverSQLite:
	case db.DriverPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.ExportWorkers <= 0 {
		cfg.ExportWorkers = 1
	}
	return cfg, nil
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

// ValidateSecretKey rejects keys unsuitable for signing sessions and sealing settings.
func ValidateSecretKey(secret string) error {
	secret = strings.TrimSpace(secret)
	switch {
	case secret == "":
		return ErrSecretKeyMissing
	case secret == InsecureSecretPlaceholder:
		return ErrSecretKeyInsecure
	case len(secret) < minimumSecretKeyLength:
		return ErrSecretKeyTooShort
	}
	return nil
}

// OpenDatabase opens the configured record store.
func (cfg Config) OpenDatabase() (*gorm.DB, error) {
	return db.Open(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
}
