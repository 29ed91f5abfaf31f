package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"catalogCache": map[string]any{
			"ttl": "5m",
		},
		"rateLimit": map[string]any{
			"requestsPerWindow": 10,
		},
		"store": map[string]any{
			"trackingBaseUrl": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "CATALOGCACHE_TTL", want: "catalogCache.ttl"},
		{envKey: "RATELIMIT_REQUESTSPERWINDOW", want: "rateLimit.requestsPerWindow"},
		{envKey: "STORE_TRACKINGBASEURL", want: "store.trackingBaseUrl"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "UGX", cfg.Store.Currency)
	assert.Equal(t, 10, cfg.Store.DefaultLowStockThreshold)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Auth:  &AuthConfig{AccessTokenTTL: time.Hour},
		Store: &StoreConfig{Currency: "USD", DefaultLowStockThreshold: 5},
	}
	cfg.HTTP.MaxRequestBodySize = "2MB"
	applyDefaults(cfg)

	assert.Equal(t, "2MB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "USD", cfg.Store.Currency)
	assert.Equal(t, 5, cfg.Store.DefaultLowStockThreshold)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL)
}
