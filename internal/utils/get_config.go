package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Server
	AppPort            string `yaml:"APP_PORT"`
	JWTSecret          string `yaml:"JWT_SECRET"`
	JWTIssuer          string `yaml:"JWT_ISSUER"`
	LogLevel           string `yaml:"LOG_LEVEL"`
	LogFormat          string `yaml:"LOG_FORMAT"`
	SessionIdleMinutes string `yaml:"SESSION_IDLE_MINUTES"`

	// External food lookup
	USDAAPIKey        string `yaml:"USDA_API_KEY"`
	USDABaseURL       string `yaml:"USDA_BASE_URL"`
	USDARatePerSecond string `yaml:"USDA_RATE_PER_SECOND"`

	// Drafts
	DraftBackend string `yaml:"DRAFT_BACKEND"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
}

var (
	config   Config
	loadOnce sync.Once
)

// LoadConfig reads .env and config.yaml once. Environment variables win over
// the file. CONFIG_PATH overrides the yaml location.
func LoadConfig() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %s\n", err)
		}

		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "config.yaml"
		}
		cfg, err := ReadConfig(path)
		if err != nil {
			log.Printf("Error reading config: %s\n", err)
		}
		config = cfg
	})
}

// ReadConfig parses the yaml file at path, if present, and applies
// environment overrides.
func ReadConfig(path string) (Config, error) {
	var cfg Config

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return applyEnv(Config{}), err
		}
	case !os.IsNotExist(err):
		return applyEnv(cfg), err
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	for key, field := range cfg.fields() {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
	return cfg
}

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"DB_USER":              &c.DBUser,
		"DB_NAME":              &c.DBName,
		"DB_PASSWORD":          &c.DBPassword,
		"DB_PORT":              &c.DBPort,
		"DB_HOST":              &c.DBHost,
		"APP_PORT":             &c.AppPort,
		"JWT_SECRET":           &c.JWTSecret,
		"JWT_ISSUER":           &c.JWTIssuer,
		"LOG_LEVEL":            &c.LogLevel,
		"LOG_FORMAT":           &c.LogFormat,
		"SESSION_IDLE_MINUTES": &c.SessionIdleMinutes,
		"USDA_API_KEY":         &c.USDAAPIKey,
		"USDA_BASE_URL":        &c.USDABaseURL,
		"USDA_RATE_PER_SECOND": &c.USDARatePerSecond,
		"DRAFT_BACKEND":        &c.DraftBackend,
		"AWS_S3_BUCKET":        &c.AWSS3Bucket,
		"AWS_S3_REGION":        &c.AWSS3Region,
		"AWS_ACCESS_KEY":       &c.AWSAccessKey,
		"AWS_SECRET_KEY":       &c.AWSSecretKey,
		"SMTP_HOST":            &c.SMTPHost,
		"SMTP_PORT":            &c.SMTPPort,
		"SMTP_SENDER_NAME":     &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":      &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":   &c.SMTPAuthPassword,
	}
}

// Get returns the value stored under key, or "" for unknown keys.
func (c Config) Get(key string) string {
	if field, ok := c.fields()[key]; ok {
		return *field
	}
	return ""
}

func GetConfig(key string) string {
	LoadConfig()
	return config.Get(key)
}

// GetConfigInt parses key as an integer, returning def when unset or invalid.
func GetConfigInt(key string, def int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return def
	}
	return v
}

// GetConfigFloat parses key as a float, returning def when unset or invalid.
func GetConfigFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(GetConfig(key), 64)
	if err != nil {
		return def
	}
	return v
}
