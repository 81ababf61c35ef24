package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines export tool configuration.
type Config struct {
	Freee  FreeeConfig  `yaml:"freee"`
	Export ExportConfig `yaml:"export"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
}

type FreeeConfig struct {
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CompanyID    int64  `yaml:"company_id"`
	// EmployeesScope narrows whose workloads are fetched; "all" by default.
	EmployeesScope string `yaml:"employees_scope"`
	// CredentialScope keys the persisted credential in the store.
	CredentialScope string `yaml:"credential_scope"`
	PageLimit       int    `yaml:"page_limit"`
	// ThrottleMS is an optional fixed delay between page fetches.
	ThrottleMS int `yaml:"throttle_ms"`
}

type ExportConfig struct {
	OutDir string `yaml:"out_dir"`
	// InternalTag and ExternalTag are the project tag names that classify
	// a project as internal or external work.
	InternalTag string `yaml:"internal_tag"`
	ExternalTag string `yaml:"external_tag"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Secrets (client secret, refresh token) are only ever read,
// never written back.
func Load() (Config, error) {
	cfg := Config{
		Freee: FreeeConfig{
			BaseURL:         "https://api.freee.co.jp",
			TokenURL:        "https://accounts.secure.freee.co.jp/public_api/token",
			EmployeesScope:  "all",
			CredentialScope: "freee",
			PageLimit:       100,
		},
		Export: ExportConfig{
			OutDir: ".",
		},
		DB: DBConfig{
			Path: "freee-export.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("FREEE_EXPORT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if clientID := os.Getenv("FREEE_CLIENT_ID"); clientID != "" {
		cfg.Freee.ClientID = clientID
	}
	if clientSecret := os.Getenv("FREEE_CLIENT_SECRET"); clientSecret != "" {
		cfg.Freee.ClientSecret = clientSecret
	}
	if companyStr := os.Getenv("FREEE_COMPANY_ID"); companyStr != "" {
		companyID, err := strconv.ParseInt(companyStr, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FREEE_COMPANY_ID: %w", err)
		}
		cfg.Freee.CompanyID = companyID
	}
	if dbPath := os.Getenv("FREEE_EXPORT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if outDir := os.Getenv("FREEE_EXPORT_OUT_DIR"); outDir != "" {
		cfg.Export.OutDir = outDir
	}
	if level := os.Getenv("FREEE_EXPORT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
