package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type CameraConfig struct {
	HTTPHost string
	Model    string
}

type PlateConfig struct {
	// GrammarFamily selects the plate grammar scheme: "category"
	// (layout encodes plate category) or "uniform".
	GrammarFamily string
}

type Config struct {
	Environment        string
	HTTP               HTTPConfig
	DB                 DBConfig
	Auth               AuthConfig
	Camera             CameraConfig
	Plate              PlateConfig
	EventRetentionDays int
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Camera: CameraConfig{
			HTTPHost: v.GetString("CAMERA_HTTP_HOST"),
			Model:    v.GetString("CAMERA_MODEL"),
		},
		Plate: PlateConfig{
			GrammarFamily: v.GetString("PLATE_GRAMMAR_FAMILY"),
		},
		EventRetentionDays: v.GetInt("EVENT_RETENTION_DAYS"),
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Plate.GrammarFamily == "" {
		cfg.Plate.GrammarFamily = "category"
	}
	if cfg.EventRetentionDays == 0 {
		cfg.EventRetentionDays = 90
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Plate.GrammarFamily != "category" && cfg.Plate.GrammarFamily != "uniform" {
		return fmt.Errorf("PLATE_GRAMMAR_FAMILY must be \"category\" or \"uniform\"")
	}
	return nil
}
