package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type ConnectInput struct {
	LeagueID   int64
	SeasonID   int
	Credential league.Credential
}

type LeagueStatus struct {
	Connected bool
	League    league.Context
	APIURL    string
}

type LeagueService struct {
	source  LeagueDataSource
	session *Session
	players *PlayerService
	logger  *logging.Logger
	now     func() time.Time
}

func NewLeagueService(source LeagueDataSource, session *Session, players *PlayerService, logger *logging.Logger) *LeagueService {
	if session == nil {
		session = NewSession()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeagueService{
		source:  source,
		session: session,
		players: players,
		logger:  logger,
		now:     time.Now,
	}
}

// Connect validates the league against the upstream and, on success, makes it
// the active session. A failed connect leaves the previous session untouched.
func (s *LeagueService) Connect(ctx context.Context, in ConnectInput) (league.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Connect")
	defer span.End()

	lc := league.Context{
		LeagueID: in.LeagueID,
		SeasonID: in.SeasonID,
		Credential: league.Credential{
			ESPNS2: strings.TrimSpace(in.Credential.ESPNS2),
			SWID:   strings.TrimSpace(in.Credential.SWID),
		},
	}
	if err := lc.Validate(); err != nil {
		return league.Summary{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	span.SetAttributes(
		attribute.Int64("league.id", lc.LeagueID),
		attribute.Int("league.season", lc.SeasonID),
		attribute.Bool("league.private", lc.Credential.HasCredential()),
	)

	snapshot, err := s.source.FetchLeague(ctx, lc, ViewSettings, ViewTeams)
	if err != nil {
		s.logger.WarnContext(ctx, "league connect failed",
			"league_id", lc.LeagueID,
			"season_id", lc.SeasonID,
			"private", lc.Credential.HasCredential(),
			"error", err,
		)
		return league.Summary{}, fmt.Errorf("connect league=%d season=%d: %w", lc.LeagueID, lc.SeasonID, err)
	}
	if snapshot.ID == 0 {
		snapshot.ID = lc.LeagueID
	}
	if snapshot.SeasonID == 0 {
		snapshot.SeasonID = lc.SeasonID
	}

	lc.Name = snapshot.Name
	lc.ConnectedAt = s.now().UTC()
	s.session.Replace(lc)
	if s.players != nil {
		s.players.InvalidateLeague(ctx, lc.LeagueID)
	}

	summary := league.Summarize(snapshot)
	s.logger.InfoContext(ctx, "league connected",
		"league_id", lc.LeagueID,
		"season_id", lc.SeasonID,
		"name", summary.Name,
		"teams", summary.Teams,
		"scoring_type", summary.ScoringType,
	)

	return summary, nil
}

func (s *LeagueService) ListTeams(ctx context.Context, lc league.Context, seasonID int) ([]league.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeams")
	defer span.End()

	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	snapshot, err := s.source.FetchLeague(ctx, lc.WithSeason(seasonID), ViewTeams, ViewRoster)
	if err != nil {
		return nil, fmt.Errorf("fetch teams league=%d season=%d: %w", lc.LeagueID, seasonID, err)
	}
	if snapshot.Teams == nil {
		return []league.Team{}, nil
	}

	return snapshot.Teams, nil
}

func (s *LeagueService) GetDraft(ctx context.Context, lc league.Context, seasonID int) (league.Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetDraft")
	defer span.End()

	if seasonID <= 0 {
		return league.Draft{}, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	snapshot, err := s.source.FetchLeague(ctx, lc.WithSeason(seasonID), ViewDraft, ViewRoster)
	if err != nil {
		return league.Draft{}, fmt.Errorf("fetch draft league=%d season=%d: %w", lc.LeagueID, seasonID, err)
	}

	draft := snapshot.Draft
	if draft.Picks == nil {
		draft.Picks = []league.DraftPick{}
	}
	return draft, nil
}

// Status reports the current connection without touching the upstream.
func (s *LeagueService) Status() LeagueStatus {
	lc, ok := s.session.Current()
	status := LeagueStatus{Connected: ok, League: lc}
	if s.source != nil {
		status.APIURL = s.source.BaseURL()
	}
	return status
}

func (s *LeagueService) Session() *Session {
	return s.session
}
