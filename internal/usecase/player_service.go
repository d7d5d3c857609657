package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/player"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/cache"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
)

const (
	strategyOutcomeSuccess   = "success"
	strategyOutcomeError     = "error"
	strategyOutcomeEmpty     = "empty"
	strategyOutcomeSkipped   = "skipped"
	strategyOutcomeDiscarded = "discarded"
)

type PlayerServiceConfig struct {
	PoolLimit       int
	SufficientCount int
	Speculative     bool
	Filter          player.FilterConfig
	CacheEnabled    bool
	CacheTTL        time.Duration
	LoadTimeout     time.Duration
}

func DefaultPlayerServiceConfig() PlayerServiceConfig {
	return PlayerServiceConfig{
		PoolLimit:       1000,
		SufficientCount: 500,
		Filter:          player.DefaultFilterConfig(),
		CacheEnabled:    true,
		CacheTTL:        60 * time.Second,
		LoadTimeout:     30 * time.Second,
	}
}

type PlayerService struct {
	source     LeagueDataSource
	cfg        PlayerServiceConfig
	strategies []poolStrategy
	cache      *cache.Store[[]player.Player]
	metrics    PoolMetrics
	logger     *logging.Logger
}

func NewPlayerService(source LeagueDataSource, cfg PlayerServiceConfig, metrics PoolMetrics, logger *logging.Logger) *PlayerService {
	defaults := DefaultPlayerServiceConfig()
	if cfg.PoolLimit <= 0 {
		cfg.PoolLimit = defaults.PoolLimit
	}
	if cfg.SufficientCount <= 0 {
		cfg.SufficientCount = defaults.SufficientCount
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = defaults.LoadTimeout
	}
	cfg.Filter = player.NormalizeFilterConfig(cfg.Filter)
	if metrics == nil {
		metrics = noopPoolMetrics{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	var store *cache.Store[[]player.Player]
	if cfg.CacheEnabled && cfg.CacheTTL > 0 {
		store = cache.NewStore[[]player.Player](cfg.CacheTTL).WithLoadTimeout(cfg.LoadTimeout)
	}

	return &PlayerService{
		source: source,
		cfg:    cfg,
		strategies: []poolStrategy{
			{name: StrategyLeaguePool, source: player.SourcePrimary, fetch: source.FetchPlayerPool},
			{name: StrategySeasonPlayers, source: player.SourceFallback, fetch: source.FetchSeasonPlayers},
		},
		cache:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchPlayerPool returns the ranked player pool for the connected league and
// the requested season.
func (s *PlayerService) FetchPlayerPool(ctx context.Context, lc league.Context, seasonID int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.FetchPlayerPool")
	defer span.End()

	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}
	lc = lc.WithSeason(seasonID)
	span.SetAttributes(attribute.Int64("league.id", lc.LeagueID), attribute.Int("league.season", seasonID))

	players, err := s.cache.GetOrLoad(ctx, poolCacheKey(lc.LeagueID, seasonID), func(ctx context.Context) ([]player.Player, error) {
		return s.buildPool(ctx, lc)
	})
	if err != nil {
		return nil, err
	}

	return players, nil
}

// InvalidateLeague drops cached pools for every season of a league.
func (s *PlayerService) InvalidateLeague(ctx context.Context, leagueID int64) {
	if removed := s.cache.DeletePrefix(ctx, fmt.Sprintf("players:%d:", leagueID)); removed > 0 {
		s.logger.DebugContext(ctx, "player pool cache invalidated", "league_id", leagueID, "entries", removed)
	}
}

func poolCacheKey(leagueID int64, seasonID int) string {
	return fmt.Sprintf("players:%d:%d", leagueID, seasonID)
}

func (s *PlayerService) buildPool(ctx context.Context, lc league.Context) ([]player.Player, error) {
	results := s.acquire(ctx, lc)

	var errs []error
	usable := false
	for _, r := range results {
		switch {
		case r.err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", r.name, r.err))
			s.metrics.ObservePoolStrategy(r.name, strategyOutcomeError)
			s.logger.WarnContext(ctx, "player pool strategy failed",
				"strategy", r.name,
				"league_id", lc.LeagueID,
				"season_id", lc.SeasonID,
				"error", r.err,
			)
		case r.quality.Count == 0:
			s.metrics.ObservePoolStrategy(r.name, strategyOutcomeEmpty)
			s.logger.WarnContext(ctx, "player pool strategy returned no usable records",
				"strategy", r.name,
				"league_id", lc.LeagueID,
				"season_id", lc.SeasonID,
			)
		default:
			usable = true
			s.metrics.ObservePoolStrategy(r.name, strategyOutcomeSuccess)
			s.logger.InfoContext(ctx, "player pool strategy finished",
				"strategy", r.name,
				"count", r.quality.Count,
				"with_adp", r.quality.WithADP,
				"with_projections", r.quality.WithProjections,
			)
		}
	}

	if !usable {
		if len(errs) == 0 {
			return nil, fmt.Errorf("%w: league=%d season=%d", ErrNoData, lc.LeagueID, lc.SeasonID)
		}
		return nil, fmt.Errorf("%w: league=%d season=%d: %w", ErrNoData, lc.LeagueID, lc.SeasonID, errors.Join(errs...))
	}

	merged := mergePoolResults(results...)
	players := player.RankAndFilter(normalizePool(merged, lc.SeasonID), s.cfg.Filter)

	quality := player.Summarize(players)
	s.metrics.SetPoolSize(len(players))
	s.logger.InfoContext(ctx, "player pool built",
		"league_id", lc.LeagueID,
		"season_id", lc.SeasonID,
		"raw", len(merged),
		"ranked", quality.Total,
		"real_adp", quality.RealADP,
		"real_projections", quality.RealProjections,
		"fallback", quality.BySource[player.SourceFallback],
	)

	return players, nil
}

// acquire runs the strategies in order, stopping once the primary is
// sufficient. In speculative mode all strategies run at once and later results
// are discarded when the primary alone is sufficient.
func (s *PlayerService) acquire(ctx context.Context, lc league.Context) []poolResult {
	if s.cfg.Speculative {
		return s.acquireSpeculative(ctx, lc)
	}

	results := make([]poolResult, 0, len(s.strategies))
	for i, strategy := range s.strategies {
		if i > 0 && s.primarySufficient(results[0]) {
			s.metrics.ObservePoolStrategy(strategy.name, strategyOutcomeSkipped)
			continue
		}
		results = append(results, runStrategy(ctx, strategy, lc, s.cfg.PoolLimit))
	}
	return results
}

func (s *PlayerService) acquireSpeculative(ctx context.Context, lc league.Context) []poolResult {
	results := make([]poolResult, len(s.strategies))

	var wg conc.WaitGroup
	for i, strategy := range s.strategies {
		wg.Go(func() {
			results[i] = runStrategy(ctx, strategy, lc, s.cfg.PoolLimit)
		})
	}
	if recovered := wg.WaitAndRecover(); recovered != nil {
		for i := range results {
			if results[i].name == "" {
				results[i] = poolResult{
					name:   s.strategies[i].name,
					source: s.strategies[i].source,
					err:    fmt.Errorf("strategy panicked: %w", recovered.AsError()),
				}
			}
		}
	}

	if len(results) > 1 && s.primarySufficient(results[0]) {
		for _, r := range results[1:] {
			s.metrics.ObservePoolStrategy(r.name, strategyOutcomeDiscarded)
		}
		return results[:1]
	}
	return results
}

func (s *PlayerService) primarySufficient(primary poolResult) bool {
	return primary.usable() && primary.quality.sufficient(s.cfg.SufficientCount)
}
