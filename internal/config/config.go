package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		Env       string `yaml:"env"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret       string `yaml:"secret"`
		TTLDays      int    `yaml:"ttl_days"`
		CookieDays   int    `yaml:"cookie_days"`
		SecureCookie bool   `yaml:"secure_cookie"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost  string `yaml:"smtp_host"`
		SMTPPort  int    `yaml:"smtp_port"`
		Username  string `yaml:"smtp_user"`
		Password  string `yaml:"smtp_password"`
		FromEmail string `yaml:"from_email"`
		FromName  string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		BasePath string `yaml:"base_path"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64 `yaml:"max_size"`
		ImageQuality int   `yaml:"image_quality"`
	} `yaml:"upload"`

	Payment struct {
		MerchantID    string `yaml:"merchant_id"`
		Secret        string `yaml:"secret"`
		WebhookSecret string `yaml:"webhook_secret"`
		CheckoutURL   string `yaml:"checkout_url"`
	} `yaml:"payment"`

	RateLimit struct {
		AuthPerSecond float64 `yaml:"auth_per_second"`
		AuthBurst     int     `yaml:"auth_burst"`
	} `yaml:"ratelimit"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig populates AppConfig from config.yaml, with environment variables
// taking precedence. A .env file is honored when present.
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("PUBLIC_URL"); v != "" {
		cfg.Server.PublicURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("PAYMENT_SECRET"); v != "" {
		cfg.Payment.Secret = v
	}
	if v := os.Getenv("PAYMENT_WEBHOOK_SECRET"); v != "" {
		cfg.Payment.WebhookSecret = v
	}
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.PublicURL == "" {
		cfg.Server.PublicURL = "http://localhost:4000"
	}
	if cfg.JWT.TTLDays == 0 {
		cfg.JWT.TTLDays = 90
	}
	if cfg.JWT.CookieDays == 0 {
		cfg.JWT.CookieDays = cfg.JWT.TTLDays
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./public"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/img"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.ImageQuality == 0 {
		cfg.Upload.ImageQuality = 90
	}
	if cfg.Payment.CheckoutURL == "" {
		cfg.Payment.CheckoutURL = "https://checkout.example.com/session"
	}
	if cfg.RateLimit.AuthPerSecond == 0 {
		cfg.RateLimit.AuthPerSecond = 1
	}
	if cfg.RateLimit.AuthBurst == 0 {
		cfg.RateLimit.AuthBurst = 10
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
