package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string

	ESPNBaseURL               string
	ESPNTimeout               time.Duration
	ESPNUserAgent             string
	ESPNCircuitEnabled        bool
	ESPNCircuitFailureCount   int
	ESPNCircuitOpenTimeout    time.Duration
	ESPNCircuitHalfOpenMaxReq int

	PlayerPoolLimit             int
	PlayerPoolSufficient        int
	PlayerPoolSpeculative       bool
	PlayerFilterMinOwnership    float64
	PlayerFilterADPCeiling      float64
	PlayerFilterLooseADPCeiling float64

	CacheEnabled bool
	CacheTTL     time.Duration

	MetricsEnabled bool
	PprofEnabled   bool
	PprofAddr      string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	httpAddr := strings.TrimSpace(getEnv("APP_HTTP_ADDR", ":8080"))
	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	espnBaseURL := strings.TrimRight(strings.TrimSpace(getEnv("ESPN_BASE_URL", "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl")), "/")
	if parsed, err := url.Parse(espnBaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("ESPN_BASE_URL must be an absolute URL, got %q", espnBaseURL)
	}
	espnTimeout, err := getEnvAsDuration("ESPN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	espnCircuitEnabled, err := getEnvAsBool("ESPN_CIRCUIT_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	espnCircuitFailureCount, err := getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if espnCircuitFailureCount <= 0 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	espnCircuitOpenTimeout, err := getEnvAsDuration("ESPN_CIRCUIT_OPEN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	espnCircuitHalfOpenMaxReq, err := getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if espnCircuitHalfOpenMaxReq <= 0 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	poolLimit, err := getEnvAsInt("PLAYER_POOL_LIMIT", 1000)
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_POOL_LIMIT: %w", err)
	}
	if poolLimit <= 0 {
		return Config{}, fmt.Errorf("PLAYER_POOL_LIMIT must be > 0")
	}
	poolSufficient, err := getEnvAsInt("PLAYER_POOL_SUFFICIENT", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_POOL_SUFFICIENT: %w", err)
	}
	if poolSufficient <= 0 {
		return Config{}, fmt.Errorf("PLAYER_POOL_SUFFICIENT must be > 0")
	}
	poolSpeculative, err := getEnvAsBool("PLAYER_POOL_SPECULATIVE", false)
	if err != nil {
		return Config{}, err
	}

	minOwnership, err := getEnvAsFloat("PLAYER_FILTER_MIN_OWNERSHIP", 1)
	if err != nil {
		return Config{}, err
	}
	if minOwnership < 0 {
		return Config{}, fmt.Errorf("PLAYER_FILTER_MIN_OWNERSHIP must be >= 0")
	}
	adpCeiling, err := getEnvAsFloat("PLAYER_FILTER_ADP_CEILING", 400)
	if err != nil {
		return Config{}, err
	}
	looseADPCeiling, err := getEnvAsFloat("PLAYER_FILTER_LOOSE_ADP_CEILING", 500)
	if err != nil {
		return Config{}, err
	}
	if adpCeiling <= 0 || looseADPCeiling < adpCeiling {
		return Config{}, fmt.Errorf("PLAYER_FILTER_ADP_CEILING must be > 0 and <= PLAYER_FILTER_LOOSE_ADP_CEILING")
	}

	cacheEnabled, err := getEnvAsBool("CACHE_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 60*time.Second)
	if err != nil {
		return Config{}, err
	}

	metricsEnabled, err := getEnvAsBool("METRICS_ENABLED", true)
	if err != nil {
		return Config{}, err
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second)
	if err != nil {
		return Config{}, err
	}

	serviceName := strings.TrimSpace(getEnv("APP_SERVICE_NAME", "draft-assistant-api"))

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        serviceName,
		ServiceVersion:     strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		HTTPAddr:           httpAddr,
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           logLevel,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		ESPNBaseURL:               espnBaseURL,
		ESPNTimeout:               espnTimeout,
		ESPNUserAgent:             strings.TrimSpace(getEnv("ESPN_USER_AGENT", "")),
		ESPNCircuitEnabled:        espnCircuitEnabled,
		ESPNCircuitFailureCount:   espnCircuitFailureCount,
		ESPNCircuitOpenTimeout:    espnCircuitOpenTimeout,
		ESPNCircuitHalfOpenMaxReq: espnCircuitHalfOpenMaxReq,

		PlayerPoolLimit:             poolLimit,
		PlayerPoolSufficient:        poolSufficient,
		PlayerPoolSpeculative:       poolSpeculative,
		PlayerFilterMinOwnership:    minOwnership,
		PlayerFilterADPCeiling:      adpCeiling,
		PlayerFilterLooseADPCeiling: looseADPCeiling,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		MetricsEnabled: metricsEnabled,
		PprofEnabled:   pprofEnabled,
		PprofAddr:      pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration parses a Go duration and rejects non-positive values.
func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
