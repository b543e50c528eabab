package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/umputun/newsdeck/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	NewsAPI    NewsAPIConfig    `yaml:"newsapi" json:"newsapi" jsonschema:"description=Remote news API configuration"`
	Topic      TopicConfig      `yaml:"topic" json:"topic" jsonschema:"description=Query of the general feed"`
	Cache      CacheConfig      `yaml:"cache" json:"cache" jsonschema:"description=In-memory feed cache"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Background refresh schedule"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full text extraction for truncated articles"`
	Log        LogConfig        `yaml:"log" json:"log" jsonschema:"description=Log file configuration"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"required,default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"required,default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
}

// DatabaseConfig holds SQLite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"required,description=Database connection string (default is under the XDG data directory)"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,minimum=1,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// NewsAPIConfig holds newsapi.org client settings
type NewsAPIConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://newsapi.org/v2,description=API base URL"`
	APIKey  string        `yaml:"api_key" json:"api_key" jsonschema:"required,description=API key (can use environment variable)"`
	Country string        `yaml:"country" json:"country" jsonschema:"default=us,description=Country code of the headline feed"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	Retries int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts on network failures"`
}

// TopicConfig is the query of the general feed
type TopicConfig struct {
	Query          string `yaml:"query" json:"query" jsonschema:"required,default=technology,description=Search terms"`
	Language       string `yaml:"language" json:"language" jsonschema:"default=en,description=Article language"`
	ExcludeDomains string `yaml:"exclude_domains" json:"exclude_domains" jsonschema:"description=Comma separated domains to skip"`
	SortBy         string `yaml:"sort_by" json:"sort_by" jsonschema:"default=publishedAt,enum=publishedAt,enum=relevancy,enum=popularity,description=Sort order"`
}

// CacheConfig holds in-memory cache settings
type CacheConfig struct {
	TTL          time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=5m,description=How long a fetched feed is served from memory"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"fetch_timeout" jsonschema:"default=1m,description=Upper bound of one fetch including retries and storage"`
}

// ScheduleConfig holds background refresh settings
type ScheduleConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Load feeds in background"`
	Refresh string `yaml:"refresh" json:"refresh" jsonschema:"default=@every 5m,description=Cron spec of background loads"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable content extraction"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsdeck/1.0,description=User agent for HTTP requests"`
}

// LogConfig holds log file rotation settings, empty file disables file logging
type LogConfig struct {
	File       string `yaml:"file" json:"file" jsonschema:"description=Log file path"`
	MaxSize    int    `yaml:"max_size" json:"max_size" jsonschema:"default=100,description=Maximum size of a log file in megabytes"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups" jsonschema:"default=5,description=Number of rotated files to keep"`
	MaxAge     int    `yaml:"max_age" json:"max_age" jsonschema:"default=30,description=Days to keep rotated files"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{Schedule: ScheduleConfig{Enabled: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return &cfg, nil
}

// DefaultDSN returns the database location under the XDG data directory
func DefaultDSN() (string, error) {
	path, err := xdg.DataFile("newsdeck/newsdeck.db")
	if err != nil {
		return "", fmt.Errorf("make data directory: %w", err)
	}
	return "file:" + path + "?cache=shared&mode=rwc&_txlock=immediate", nil
}

func (c *Config) setDefaults() error {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if c.Database.DSN == "" {
		dsn, err := DefaultDSN()
		if err != nil {
			return err
		}
		c.Database.DSN = dsn
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// newsapi
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if c.NewsAPI.Country == "" {
		c.NewsAPI.Country = "us"
	}
	if c.NewsAPI.Timeout == 0 {
		c.NewsAPI.Timeout = 30 * time.Second
	}
	if c.NewsAPI.Retries == 0 {
		c.NewsAPI.Retries = 3
	}

	// topic
	if c.Topic.Query == "" {
		c.Topic.Query = "technology"
	}
	if c.Topic.Language == "" {
		c.Topic.Language = "en"
	}
	if c.Topic.SortBy == "" {
		c.Topic.SortBy = "publishedAt"
	}

	// cache
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Cache.FetchTimeout == 0 {
		c.Cache.FetchTimeout = time.Minute
	}

	// schedule, enabled unless the section says otherwise
	if c.Schedule.Refresh == "" {
		c.Schedule.Refresh = "@every 5m"
	}

	// extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "Newsdeck/1.0"
	}

	// log rotation
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 100
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 30
	}
	return nil
}

// UnmarshalYAML keeps the schedule enabled when the section omits the flag.
// A missing section is handled in Load.
func (s *ScheduleConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ScheduleConfig
	res := plain{Enabled: true}
	if err := value.Decode(&res); err != nil {
		return err
	}
	*s = ScheduleConfig(res)
	return nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.NewsAPI.APIKey) == "" {
		return fmt.Errorf("newsapi.api_key is required")
	}
	if cfg.NewsAPI.Retries < 1 {
		return fmt.Errorf("newsapi.retries must be at least 1")
	}
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative")
	}
	if cfg.Cache.FetchTimeout < time.Second {
		return fmt.Errorf("cache.fetch_timeout must be at least 1 second")
	}
	switch cfg.Topic.SortBy {
	case "publishedAt", "relevancy", "popularity":
	default:
		return fmt.Errorf("topic.sort_by must be one of publishedAt, relevancy, popularity, got %q", cfg.Topic.SortBy)
	}
	if cfg.Extraction.Enabled && cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}
	return nil
}

// TopicQuery returns the general feed query
func (c *Config) TopicQuery() domain.TopicQuery {
	return domain.TopicQuery{
		Query:          c.Topic.Query,
		Language:       c.Topic.Language,
		ExcludeDomains: c.Topic.ExcludeDomains,
		SortBy:         c.Topic.SortBy,
	}
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the external base URL used in RSS links
func (c *Config) GetBaseURL() string {
	return strings.TrimSuffix(c.Server.BaseURL, "/")
}

// GetExtractionConfig returns content extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}
