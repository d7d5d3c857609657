package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/draft-assistant-api/external/espn"
	"github.com/riskibarqy/draft-assistant-api/internal/config"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/player"
	"github.com/riskibarqy/draft-assistant-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/metrics"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/resilience"
	"github.com/riskibarqy/draft-assistant-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var reg *metrics.Registry
	if cfg.MetricsEnabled {
		reg = metrics.New()
	}

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:   cfg.ESPNBaseURL,
		Timeout:   cfg.ESPNTimeout,
		UserAgent: cfg.ESPNUserAgent,
		Logger:    logger,
		Metrics:   reg,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	playerSvc := usecase.NewPlayerService(espnClient, usecase.PlayerServiceConfig{
		PoolLimit:       cfg.PlayerPoolLimit,
		SufficientCount: cfg.PlayerPoolSufficient,
		Speculative:     cfg.PlayerPoolSpeculative,
		Filter: player.FilterConfig{
			MinOwnership:    cfg.PlayerFilterMinOwnership,
			ADPCeiling:      cfg.PlayerFilterADPCeiling,
			LooseADPCeiling: cfg.PlayerFilterLooseADPCeiling,
		},
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
		LoadTimeout:  2 * cfg.ESPNTimeout,
	}, reg, logger)
	leagueSvc := usecase.NewLeagueService(espnClient, usecase.NewSession(), playerSvc, logger)

	opts := httpapi.RouterOptions{CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if reg != nil {
		opts.Metrics = reg.Handler()
		opts.RequestMetrics = reg
	}

	handler := httpapi.NewHandler(leagueSvc, playerSvc, logger)
	router := httpapi.NewRouter(handler, logger, opts)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	logger.Info("http server configured",
		"addr", cfg.HTTPAddr,
		"espn_base_url", espnClient.BaseURL(),
		"metrics_enabled", cfg.MetricsEnabled,
		"cache_enabled", cfg.CacheEnabled,
		"speculative_pool", cfg.PlayerPoolSpeculative,
	)

	return server, nil
}
