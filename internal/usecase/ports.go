package usecase

import (
	"context"

	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/player"
)

// League read views understood by the data source.
const (
	ViewSettings = "mSettings"
	ViewTeams    = "mTeam"
	ViewRoster   = "mRoster"
	ViewDraft    = "mDraftDetail"
)

// LeagueDataSource is the upstream fantasy platform as seen by the use cases.
// The season is taken from the league context.
type LeagueDataSource interface {
	FetchLeague(ctx context.Context, lc league.Context, views ...string) (league.Snapshot, error)
	FetchPlayerPool(ctx context.Context, lc league.Context, limit int) ([]player.RawRecord, error)
	FetchSeasonPlayers(ctx context.Context, lc league.Context, limit int) ([]player.RawRecord, error)
	BaseURL() string
}

type PoolMetrics interface {
	ObservePoolStrategy(strategy, outcome string)
	SetPoolSize(n int)
}

type noopPoolMetrics struct{}

func (noopPoolMetrics) ObservePoolStrategy(string, string) {}
func (noopPoolMetrics) SetPoolSize(int)                    {}
