package config

import (
	"strings"
	"testing"
	"time"
)

// mapBackend is an in-memory Backend for tests.
type mapBackend struct {
	data map[string]any
}

func (m mapBackend) GetString(key string) (string, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (m mapBackend) GetInt(key string) (int, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return 0, false, nil
	}
	return v.(int), true, nil
}

func (m mapBackend) SetString(key, val string) error { m.data[key] = val; return nil }
func (m mapBackend) SetInt(key string, val int) error {
	m.data[key] = val
	return nil
}
func (m mapBackend) Delete(key string) error { delete(m.data, key); return nil }

func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
	}
}

// TestDefaults verifies default values survive an empty backend.
func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TNETBOT_GATEWAY_TOKEN", "test-token")

	cfg, err := loadWith(mapBackend{data: map[string]any{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Gateway.BaseURL != "https://api.telegram.org" {
		t.Errorf("Gateway.BaseURL = %q", cfg.Gateway.BaseURL)
	}
	if cfg.FollowUp.Delay != "24h" {
		t.Errorf("FollowUp.Delay = %q, want 24h", cfg.FollowUp.Delay)
	}
	if cfg.FollowUp.PollInterval != "30s" {
		t.Errorf("FollowUp.PollInterval = %q, want 30s", cfg.FollowUp.PollInterval)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}

	d, err := cfg.FollowUpDelay()
	if err != nil {
		t.Fatalf("FollowUpDelay: %v", err)
	}
	if d != 24*time.Hour {
		t.Errorf("FollowUpDelay = %v, want 24h", d)
	}
}

// TestBackendValues verifies values read from the backend replace defaults.
func TestBackendValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TNETBOT_GATEWAY_TOKEN", "test-token")

	b := mapBackend{data: map[string]any{
		"server.port":      9000,
		"storage.data_dir": "/tmp/tnetbot-test",
		"followup.delay":   "1h",
	}}

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/tmp/tnetbot-test" {
		t.Errorf("Storage.DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.FollowUp.Delay != "1h" {
		t.Errorf("FollowUp.Delay = %q, want 1h", cfg.FollowUp.Delay)
	}
}

// TestEnvOverride verifies environment variables win over backend values.
func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("TNETBOT_GATEWAY_TOKEN", "test-token")
	t.Setenv("TNETBOT_SERVER_PORT", "7777")
	t.Setenv("TNETBOT_FOLLOWUP_DELAY", "15m")

	b := mapBackend{data: map[string]any{
		"server.port":    9000,
		"followup.delay": "1h",
	}}

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.FollowUp.Delay != "15m" {
		t.Errorf("FollowUp.Delay = %q, want 15m", cfg.FollowUp.Delay)
	}
}

// TestMissingGatewayToken verifies a clear error when no token is provided.
func TestMissingGatewayToken(t *testing.T) {
	clearEnv(t)

	_, err := loadWith(mapBackend{data: map[string]any{}})
	if err == nil {
		t.Fatal("expected error for missing gateway token, got nil")
	}
	if !strings.Contains(err.Error(), "missing required config") {
		t.Errorf("error = %q, want it to mention missing required config", err)
	}
}

// TestInvalidDelay verifies a malformed duration is rejected at load time.
func TestInvalidDelay(t *testing.T) {
	clearEnv(t)
	t.Setenv("TNETBOT_GATEWAY_TOKEN", "test-token")

	b := mapBackend{data: map[string]any{"followup.delay": "soon"}}
	if _, err := loadWith(b); err == nil {
		t.Fatal("expected error for invalid delay, got nil")
	}
}

// TestShowAllSkipsSecrets verifies secrets never appear in the display list.
func TestShowAllSkipsSecrets(t *testing.T) {
	cfg := defaults()
	cfg.Gateway.Token = "super-secret"
	cfg.API.Token = "admin-secret"

	for _, info := range ShowAll(cfg) {
		if info.Key == "gateway.token" || info.Key == "api.token" {
			t.Errorf("secret key %q exposed by ShowAll", info.Key)
		}
		if strings.Contains(info.Value, "secret") {
			t.Errorf("secret value leaked under key %q", info.Key)
		}
	}
}

func TestValidKeys(t *testing.T) {
	keys := ValidKeys()
	for _, k := range keys {
		if k == "gateway.token" || k == "api.token" {
			t.Errorf("secret key %q listed as settable", k)
		}
	}
	found := false
	for _, k := range keys {
		if k == "followup.poll_interval" {
			found = true
		}
	}
	if !found {
		t.Error("followup.poll_interval missing from ValidKeys")
	}
}
