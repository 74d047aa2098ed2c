package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Gateway  GatewayConfig
	FollowUp FollowUpConfig
	API      APIConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

type GatewayConfig struct {
	BaseURL string
	Token   string
}

type FollowUpConfig struct {
	// Delay and PollInterval are Go duration strings ("24h", "30s").
	Delay        string
	PollInterval string
}

type APIConfig struct {
	Token string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8090,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Gateway: GatewayConfig{
			BaseURL: "https://api.telegram.org",
		},
		FollowUp: FollowUpConfig{
			Delay:        "24h",
			PollInterval: "30s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/tnetbot/config.json, then applies TNETBOT_* environment
// variable overrides. Secrets (gateway token, admin API token) are never
// stored in the file and must come from the environment.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Gateway.Token == "" {
		return Config{}, fmt.Errorf("missing required config: gateway token. Set it via environment variable TNETBOT_GATEWAY_TOKEN")
	}

	if _, err := cfg.FollowUpDelay(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.FollowUpPollInterval(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// FollowUpDelay returns the delay between a service view and its follow-up.
func (c Config) FollowUpDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.FollowUp.Delay)
	if err != nil {
		return 0, fmt.Errorf("invalid followup.delay %q: %w", c.FollowUp.Delay, err)
	}
	return d, nil
}

// FollowUpPollInterval returns how often the worker checks for due follow-ups.
func (c Config) FollowUpPollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.FollowUp.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid followup.poll_interval %q: %w", c.FollowUp.PollInterval, err)
	}
	return d, nil
}
