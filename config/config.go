package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	DB      DBConfig      `yaml:"db"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	S3      S3Config      `yaml:"s3"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Mailgun MailgunConfig `yaml:"mailgun"`
	Redis   RedisConfig   `yaml:"redis"`
	Users   UsersConfig   `yaml:"users"`
}

type HTTPConfig struct {
	Address string        `yaml:"address"`
	Timeout time.Duration `yaml:"timeout"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` //nolint:gosec // config struct, not hardcoded cred
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"` //nolint:gosec // config struct, not hardcoded cred
}

type LedgerConfig struct {
	Table  string `yaml:"table"`
	Region string `yaml:"region"`
}

type MailgunConfig struct {
	Domain  string `yaml:"domain"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type RedisConfig struct {
	Address string `yaml:"address"`
	Prefix  string `yaml:"prefix"`
}

type UsersConfig struct {
	CSVPath string `yaml:"csv_path"`
}

func Load() (*Config, error) {
	configPath := getConfigPath()

	var cfg Config
	if data, err := os.ReadFile(configPath); err == nil { //nolint:gosec // config path from env/flag
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	setDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}

	possiblePaths := []string{
		"config/config.yaml",
		"/etc/assignment-service/config.yaml",
		"./config.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "config.yaml"
}

func setDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}

	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}

	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "submission-created"
	}

	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "fulfillment-worker-group"
	}

	if cfg.S3.Region == "" {
		cfg.S3.Region = "us-east-1"
	}

	if cfg.Ledger.Region == "" {
		cfg.Ledger.Region = cfg.S3.Region
	}

	if cfg.Mailgun.BaseURL == "" {
		cfg.Mailgun.BaseURL = "https://api.mailgun.net/v3"
	}

	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "assignment_service."
	}
}

func overrideFromEnv(cfg *Config) {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_TIMEOUT"); val != "" {
		if timeout, err := strconv.Atoi(val); err == nil {
			cfg.HTTP.Timeout = time.Duration(timeout) * time.Second
		}
	}

	if val := os.Getenv("DB_HOST"); val != "" {
		cfg.DB.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.DB.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		cfg.DB.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		cfg.DB.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		cfg.DB.DBName = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		cfg.DB.SSLMode = val
	}

	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		cfg.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := os.Getenv("KAFKA_TOPIC"); val != "" {
		cfg.Kafka.Topic = val
	}
	if val := os.Getenv("KAFKA_GROUP_ID"); val != "" {
		cfg.Kafka.GroupID = val
	}

	if val := os.Getenv("S3_BUCKET"); val != "" {
		cfg.S3.Bucket = val
	}
	if val := os.Getenv("S3_REGION"); val != "" {
		cfg.S3.Region = val
	}
	if val := os.Getenv("S3_ENDPOINT"); val != "" {
		cfg.S3.Endpoint = val
	}
	if val := os.Getenv("S3_ACCESS_KEY_ID"); val != "" {
		cfg.S3.AccessKeyID = val
	}
	if val := os.Getenv("S3_SECRET_ACCESS_KEY"); val != "" {
		cfg.S3.SecretAccessKey = val
	}

	if val := os.Getenv("LEDGER_TABLE"); val != "" {
		cfg.Ledger.Table = val
	}
	if val := os.Getenv("LEDGER_REGION"); val != "" {
		cfg.Ledger.Region = val
	}

	if val := os.Getenv("MAILGUN_DOMAIN"); val != "" {
		cfg.Mailgun.Domain = val
	}
	if val := os.Getenv("MAILGUN_API_KEY"); val != "" {
		cfg.Mailgun.APIKey = val
	}
	if val := os.Getenv("MAILGUN_BASE_URL"); val != "" {
		cfg.Mailgun.BaseURL = val
	}

	if val := os.Getenv("REDIS_ADDRESS"); val != "" {
		cfg.Redis.Address = val
	}
	if val := os.Getenv("REDIS_PREFIX"); val != "" {
		cfg.Redis.Prefix = val
	}

	if val := os.Getenv("USERS_CSV_PATH"); val != "" {
		cfg.Users.CSVPath = val
	}
}

// validateConfig checks only what both binaries need; the server fails
// fast on its own database settings when it opens the pool.
func validateConfig(cfg *Config) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one Kafka broker must be specified")
	}

	return nil
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
