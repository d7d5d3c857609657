package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
	for _, key := range []string{
		"APP_HTTP_ADDR", "APP_LOG_LEVEL", "ESPN_BASE_URL", "ESPN_TIMEOUT",
		"PLAYER_POOL_LIMIT", "PLAYER_POOL_SUFFICIENT", "PLAYER_POOL_SPECULATIVE",
		"PLAYER_FILTER_MIN_OWNERSHIP", "PLAYER_FILTER_ADP_CEILING", "PLAYER_FILTER_LOOSE_ADP_CEILING",
		"CACHE_ENABLED", "CACHE_TTL", "ESPN_CIRCUIT_ENABLED", "ESPN_CIRCUIT_FAILURE_COUNT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if cfg.ESPNBaseURL != "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl" {
		t.Fatalf("unexpected ESPNBaseURL: %q", cfg.ESPNBaseURL)
	}
	if cfg.ESPNTimeout != 15*time.Second {
		t.Fatalf("unexpected ESPNTimeout: %s", cfg.ESPNTimeout)
	}
	if cfg.PlayerPoolLimit != 1000 || cfg.PlayerPoolSufficient != 500 || cfg.PlayerPoolSpeculative {
		t.Fatalf("unexpected pool config: limit=%d sufficient=%d speculative=%v", cfg.PlayerPoolLimit, cfg.PlayerPoolSufficient, cfg.PlayerPoolSpeculative)
	}
	if cfg.PlayerFilterMinOwnership != 1 || cfg.PlayerFilterADPCeiling != 400 || cfg.PlayerFilterLooseADPCeiling != 500 {
		t.Fatalf("unexpected filter config: %v %v %v", cfg.PlayerFilterMinOwnership, cfg.PlayerFilterADPCeiling, cfg.PlayerFilterLooseADPCeiling)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache config: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if !cfg.ESPNCircuitEnabled || cfg.ESPNCircuitFailureCount != 5 {
		t.Fatalf("unexpected circuit config: enabled=%v failures=%d", cfg.ESPNCircuitEnabled, cfg.ESPNCircuitFailureCount)
	}
}

func TestLoad_ESPNBaseURLTrimsTrailingSlash(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("ESPN_BASE_URL", "http://127.0.0.1:9000/ffl/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ESPNBaseURL != "http://127.0.0.1:9000/ffl" {
		t.Fatalf("unexpected ESPNBaseURL: %q", cfg.ESPNBaseURL)
	}
}

func TestLoad_ESPNBaseURLMustBeAbsolute(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("ESPN_BASE_URL", "not-a-url")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for relative ESPN_BASE_URL")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "APP_LOG_LEVEL", value: "verbose"},
		{key: "ESPN_TIMEOUT", value: "soon"},
		{key: "ESPN_TIMEOUT", value: "-1s"},
		{key: "ESPN_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "ESPN_CIRCUIT_ENABLED", value: "maybe"},
		{key: "PLAYER_POOL_LIMIT", value: "0"},
		{key: "PLAYER_POOL_SUFFICIENT", value: "abc"},
		{key: "PLAYER_FILTER_MIN_OWNERSHIP", value: "-2"},
		{key: "PLAYER_FILTER_ADP_CEILING", value: "600"},
		{key: "CACHE_TTL", value: "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_PlayerPoolParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PLAYER_POOL_LIMIT", "750")
	t.Setenv("PLAYER_POOL_SUFFICIENT", "300")
	t.Setenv("PLAYER_POOL_SPECULATIVE", "true")
	t.Setenv("PLAYER_FILTER_MIN_OWNERSHIP", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PlayerPoolLimit != 750 || cfg.PlayerPoolSufficient != 300 || !cfg.PlayerPoolSpeculative {
		t.Fatalf("unexpected pool config: %+v", cfg)
	}
	if cfg.PlayerFilterMinOwnership != 2.5 {
		t.Fatalf("unexpected PlayerFilterMinOwnership: %v", cfg.PlayerFilterMinOwnership)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "draft-helper")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "draft-helper" {
		t.Fatalf("expected pyroscope app name to follow service name, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Run("default origins", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
			t.Fatalf("unexpected default origins: %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("custom origins are trimmed", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://draft.example.com , ,* ")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://draft.example.com" || cfg.CORSAllowedOrigins[1] != "*" {
			t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
		}
	})
}
