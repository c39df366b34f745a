package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

// AppConfig 는 서버 실행에 필요한 설정을 모읍니다.
type AppConfig struct {
	ListenAddr     string    `yaml:"listen_addr"`
	Port           string    `yaml:"port"`
	GinMode        string    `yaml:"gin_mode"`
	StoreDriver    string    `yaml:"store_driver"`
	DatabasePath   string    `yaml:"database_path"`
	UploadDir      string    `yaml:"upload_dir"`
	UploadURLPath  string    `yaml:"upload_url_path"`
	AllowedOrigins []string  `yaml:"allowed_origins"`
	SeedData       bool      `yaml:"seed_data"`
	Log            LogConfig `yaml:"log"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func defaults() AppConfig {
	return AppConfig{
		Port:           "8000",
		GinMode:        "release",
		StoreDriver:    StoreDriverSQLite,
		DatabasePath:   "file::memory:?cache=shared",
		UploadDir:      "uploads",
		UploadURLPath:  "/uploads",
		AllowedOrigins: []string{"http://localhost:3000"},
		SeedData:       true,
		Log:            LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
	}
}

// Load 는 기본값 → YAML 파일(path) → .env → 환경 변수 순서로 설정을 덮어씁니다.
// path 가 비어 있으면 YAML 파일을 읽지 않습니다.
func Load(path string) (AppConfig, error) {
	cfg := defaults()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	envOverride(&cfg.Port, "PORT")
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.GinMode, "GIN_MODE")
	envOverride(&cfg.StoreDriver, "STORE_DRIVER")
	envOverride(&cfg.DatabasePath, "DATABASE_PATH")
	envOverride(&cfg.UploadDir, "UPLOAD_DIR")
	envOverride(&cfg.UploadURLPath, "UPLOAD_URL_PATH")
	envOverrideList(&cfg.AllowedOrigins, "ALLOWED_ORIGINS")
	envOverrideBool(&cfg.SeedData, "SEED_DATA")
	envOverride(&cfg.Log.Level, "LOG_LEVEL")
	envOverride(&cfg.Log.File, "LOG_FILE")
	envOverrideBool(&cfg.Log.Console, "LOG_CONSOLE")

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if cfg.StoreDriver != StoreDriverSQLite && cfg.StoreDriver != StoreDriverMemory {
		return cfg, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if !strings.HasPrefix(cfg.UploadURLPath, "/") {
		cfg.UploadURLPath = "/" + cfg.UploadURLPath
	}

	return cfg, nil
}

func envOverride(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envOverrideBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envOverrideList(dst *[]string, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) > 0 {
		*dst = items
	}
}
