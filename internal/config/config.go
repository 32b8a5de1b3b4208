package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Storage struct {
		BasePath string `yaml:"base_path"` // Uploads directory on disk
		BaseURL  string `yaml:"base_url"`  // Public URL prefix for stored files
	} `yaml:"storage"`

	Upload struct {
		MaxApplicationFileSize int64 `yaml:"max_application_file_size"` // Bytes, per intake document
		MaxOfferFileSize       int64 `yaml:"max_offer_file_size"`       // Bytes, per offer document
	} `yaml:"upload"`

	Converter struct {
		SofficeBin string `yaml:"soffice_bin"` // LibreOffice binary for docx conversion
		TempDir    string `yaml:"temp_dir"`    // Scratch dir for conversion, "" = os.TempDir
	} `yaml:"converter"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test/deployment mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Storage.BasePath = os.Getenv("STORAGE_BASE_PATH")
	cfg.Storage.BaseURL = os.Getenv("STORAGE_BASE_URL")
	cfg.Converter.SofficeBin = os.Getenv("SOFFICE_BIN")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Upload.MaxApplicationFileSize == 0 {
		cfg.Upload.MaxApplicationFileSize = 2 * 1024 * 1024 // 2MB
	}
	if cfg.Upload.MaxOfferFileSize == 0 {
		cfg.Upload.MaxOfferFileSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Converter.SofficeBin == "" {
		cfg.Converter.SofficeBin = "soffice"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
