package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
)

// FlexibleStringSlice is a []string that also accepts JSON numbers,
// so allow_from can contain both "123" and 123.
type FlexibleStringSlice []string

func (f *FlexibleStringSlice) UnmarshalJSON(data []byte) error {
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*f = ss
		return nil
	}

	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	result := make([]string, 0, len(raw))
	for _, v := range raw {
		switch val := v.(type) {
		case string:
			result = append(result, val)
		case float64:
			result = append(result, fmt.Sprintf("%.0f", val))
		default:
			result = append(result, fmt.Sprintf("%v", val))
		}
	}
	*f = result
	return nil
}

type Config struct {
	Server    ServerConfig    `json:"server"`
	Session   SessionConfig   `json:"session"`
	Provider  ProviderConfig  `json:"provider"`
	Knowledge KnowledgeConfig `json:"knowledge"`
	Channels  ChannelsConfig  `json:"channels"`
	Telemetry TelemetryConfig `json:"telemetry"`
	mu        sync.RWMutex
}

type ServerConfig struct {
	Host string `json:"host" env:"NETRAGPT_SERVER_HOST"`
	Port int    `json:"port" env:"NETRAGPT_SERVER_PORT"`
}

type SessionConfig struct {
	TTLSeconds       int     `json:"ttl_seconds" env:"NETRAGPT_SESSION_TTL_SECONDS"`
	WarningMinutes   int     `json:"warning_minutes" env:"NETRAGPT_SESSION_WARNING_MINUTES"`
	MaxWarnings      int     `json:"max_warnings" env:"NETRAGPT_SESSION_MAX_WARNINGS"`
	SweepProbability float64 `json:"sweep_probability" env:"NETRAGPT_SESSION_SWEEP_PROBABILITY"`
	SweepCron        string  `json:"sweep_cron" env:"NETRAGPT_SESSION_SWEEP_CRON"`
}

type ProviderConfig struct {
	APIKey         string  `json:"api_key" env:"NETRAGPT_PROVIDER_API_KEY"`
	APIBase        string  `json:"api_base" env:"NETRAGPT_PROVIDER_API_BASE"`
	Model          string  `json:"model" env:"NETRAGPT_PROVIDER_MODEL"`
	MaxTokens      int     `json:"max_tokens" env:"NETRAGPT_PROVIDER_MAX_TOKENS"`
	Temperature    float64 `json:"temperature" env:"NETRAGPT_PROVIDER_TEMPERATURE"`
	TimeoutSeconds int     `json:"timeout_seconds" env:"NETRAGPT_PROVIDER_TIMEOUT_SECONDS"`
}

type KnowledgeConfig struct {
	Enabled         bool `json:"enabled" env:"NETRAGPT_KNOWLEDGE_ENABLED"`
	MaxResults      int  `json:"max_results" env:"NETRAGPT_KNOWLEDGE_MAX_RESULTS"`
	TimeoutSeconds  int  `json:"timeout_seconds" env:"NETRAGPT_KNOWLEDGE_TIMEOUT_SECONDS"`
	CacheTTLSeconds int  `json:"cache_ttl_seconds" env:"NETRAGPT_KNOWLEDGE_CACHE_TTL_SECONDS"`
	CacheSize       int  `json:"cache_size" env:"NETRAGPT_KNOWLEDGE_CACHE_SIZE"`
}

type ChannelsConfig struct {
	Discord DiscordConfig `json:"discord"`
}

type DiscordConfig struct {
	Enabled   bool                `json:"enabled" env:"NETRAGPT_CHANNELS_DISCORD_ENABLED"`
	Token     string              `json:"token" env:"NETRAGPT_CHANNELS_DISCORD_TOKEN"`
	AllowFrom FlexibleStringSlice `json:"allow_from" env:"NETRAGPT_CHANNELS_DISCORD_ALLOW_FROM"`
}

type TelemetryConfig struct {
	Enabled bool   `json:"enabled" env:"NETRAGPT_TELEMETRY_ENABLED"`
	Path    string `json:"path" env:"NETRAGPT_TELEMETRY_PATH"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 18890,
		},
		Session: SessionConfig{
			TTLSeconds:       1200,
			WarningMinutes:   5,
			MaxWarnings:      2,
			SweepProbability: 0.1,
			SweepCron:        "*/5 * * * *",
		},
		Provider: ProviderConfig{
			APIBase:        "https://openrouter.ai/api/v1",
			Model:          "openai/gpt-5.2",
			MaxTokens:      2048,
			Temperature:    0.7,
			TimeoutSeconds: 60,
		},
		Knowledge: KnowledgeConfig{
			Enabled:         true,
			MaxResults:      3,
			TimeoutSeconds:  10,
			CacheTTLSeconds: 300,
			CacheSize:       256,
		},
		Channels: ChannelsConfig{
			Discord: DiscordConfig{
				Enabled:   false,
				Token:     "",
				AllowFrom: FlexibleStringSlice{},
			},
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
			Path:    "~/.netragpt/state/telemetry.db",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if envErr := env.Parse(cfg); envErr != nil {
				return nil, envErr
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func (c *Config) ListenAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider.APIKey
}

func (c *Config) TelemetryPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return expandHome(c.Telemetry.Path)
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
