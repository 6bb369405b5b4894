package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Minio      MinioConfig      `yaml:"minio"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Policy     PolicyConfig     `yaml:"policy"`
	Store      StoreConfig      `yaml:"store"`
	Auth       AuthConfig       `yaml:"auth"`
	Users      []User           `yaml:"users"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

// ExtractionConfig configures the external text-extraction service used for
// PDF and DOCX files.
type ExtractionConfig struct {
	APIURL         string        `yaml:"api_url"`
	APIToken       string        `yaml:"api_token"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
}

// ClassifierConfig configures the clause-classification inference endpoint.
type ClassifierConfig struct {
	APIURL         string        `yaml:"api_url"`
	APIToken       string        `yaml:"api_token"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	// Threshold is the minimum confidence for a label to be assigned.
	Threshold float64 `yaml:"threshold"`
}

// GeneratorConfig configures the recommendation-generation model endpoint.
type GeneratorConfig struct {
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// PipelineConfig bounds the process-wide worker pool shared by all
// concurrent analyses.
type PipelineConfig struct {
	Workers int `yaml:"workers"`
}

type PolicyConfig struct {
	// File points to the compliance policy YAML. Empty means built-in defaults.
	File string `yaml:"file"`
}

type StoreConfig struct {
	MaxAnalyses int `yaml:"max_analyses"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Tenant   string `yaml:"tenant"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 60 * time.Second
	}
	if cfg.Extraction.MaxRetries == 0 {
		cfg.Extraction.MaxRetries = 2
	}
	if cfg.Extraction.RetryBaseDelay == 0 {
		cfg.Extraction.RetryBaseDelay = time.Second
	}
	if cfg.Classifier.Timeout == 0 {
		cfg.Classifier.Timeout = 15 * time.Second
	}
	if cfg.Classifier.MaxRetries == 0 {
		cfg.Classifier.MaxRetries = 2
	}
	if cfg.Classifier.RetryBaseDelay == 0 {
		cfg.Classifier.RetryBaseDelay = 500 * time.Millisecond
	}
	if cfg.Classifier.Threshold == 0 {
		cfg.Classifier.Threshold = 0.5
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "gpt-4o-mini"
	}
	if cfg.Generator.Timeout == 0 {
		cfg.Generator.Timeout = 30 * time.Second
	}
	if cfg.Generator.MaxTokens == 0 {
		cfg.Generator.MaxTokens = 160
	}
	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = 8
	}
	if cfg.Store.MaxAnalyses == 0 {
		cfg.Store.MaxAnalyses = 100
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}
