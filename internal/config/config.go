package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database    DatabaseConfig   `yaml:"database"`
	YouTube     YouTubeConfig    `yaml:"youtube"`
	Transcripts TranscriptConfig `yaml:"transcripts"`
	Sync        SyncConfig       `yaml:"sync"`
	RabbitMQ    RabbitMQConfig   `yaml:"rabbitmq"`
	Redis       RedisConfig      `yaml:"redis"`
	LogLevel    string           `yaml:"log_level"`
}

type DatabaseConfig struct {
	URL         string `yaml:"url"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
	DBName      string `yaml:"dbname"`
	SSLMode     string `yaml:"sslmode"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// DSN returns URL when set, otherwise a keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type YouTubeConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MinInterval time.Duration `yaml:"min_interval"`
}

type TranscriptConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
}

type SyncConfig struct {
	MaxVideosPerRun int `yaml:"max_videos_per_run"`
}

// RabbitMQConfig is optional; an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// RedisConfig is optional; an empty Addr disables the uploads cache.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// Load reads the YAML file at path, expanding ${VAR} references from the
// environment (and .env, when present). A missing file is not an error:
// the environment alone may carry the required settings.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return errors.New("youtube api key is required (youtube.api_key or YOUTUBE_API_KEY)")
	}
	if c.Database.DSN() == "" {
		return errors.New("database connection is required (database.url or DATABASE_URL)")
	}
	if c.Sync.MaxVideosPerRun < 0 {
		return fmt.Errorf("sync.max_videos_per_run must not be negative, got %d", c.Sync.MaxVideosPerRun)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3/"
	}
	if c.YouTube.Timeout == 0 {
		c.YouTube.Timeout = 30 * time.Second
	}
	if c.YouTube.MinInterval == 0 {
		c.YouTube.MinInterval = 100 * time.Millisecond
	}
	if c.Transcripts.BaseURL == "" {
		c.Transcripts.BaseURL = "https://www.youtube.com/api/timedtext"
	}
	if c.Transcripts.Language == "" {
		c.Transcripts.Language = "en"
	}
	if c.Transcripts.Timeout == 0 {
		c.Transcripts.Timeout = 30 * time.Second
	}
	if c.Sync.MaxVideosPerRun == 0 {
		c.Sync.MaxVideosPerRun = 50
	}
	if c.RabbitMQ.URL != "" {
		if c.RabbitMQ.Exchange == "" {
			c.RabbitMQ.Exchange = "sciencevideodb"
		}
		if c.RabbitMQ.RoutingKey == "" {
			c.RabbitMQ.RoutingKey = "videos"
		}
		if c.RabbitMQ.QueueName == "" {
			c.RabbitMQ.QueueName = "video_ingested"
		}
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = 7 * 24 * time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
