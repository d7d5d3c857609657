package league

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Credential is the pair of opaque cookies that unlock a private league.
type Credential struct {
	ESPNS2 string `json:"espnS2"`
	SWID   string `json:"swid"`
}

// HasCredential reports whether both cookie values are present.
func (c Credential) HasCredential() bool {
	return strings.TrimSpace(c.ESPNS2) != "" && strings.TrimSpace(c.SWID) != ""
}

// Cookie renders the request cookie header value.
func (c Credential) Cookie() string {
	if !c.HasCredential() {
		return ""
	}
	return fmt.Sprintf("espn_s2=%s; SWID=%s", strings.TrimSpace(c.ESPNS2), strings.TrimSpace(c.SWID))
}

// Context identifies the connected league. It is replaced wholesale on connect
// and never mutated afterwards.
type Context struct {
	LeagueID    int64
	SeasonID    int
	Credential  Credential
	Name        string
	ConnectedAt time.Time
}

func (c Context) Validate() error {
	if c.LeagueID <= 0 {
		return fmt.Errorf("league id must be greater than zero")
	}
	if c.SeasonID <= 0 {
		return fmt.Errorf("season id must be greater than zero")
	}

	return nil
}

// WithSeason returns a copy scoped to another season of the same league.
func (c Context) WithSeason(seasonID int) Context {
	if seasonID > 0 {
		c.SeasonID = seasonID
	}
	return c
}

type RosterEntry struct {
	PlayerID        int64   `json:"playerId"`
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	Team            string  `json:"team"`
	LineupSlotID    int     `json:"lineupSlotId"`
	LineupSlot      string  `json:"lineupSlot"`
	ProjectedPoints float64 `json:"projectedPoints"`
}

type Team struct {
	ID     int64         `json:"id"`
	Name   string        `json:"name"`
	Abbrev string        `json:"abbrev"`
	Owner  string        `json:"owner"`
	Record string        `json:"record"`
	Wins   int           `json:"wins"`
	Losses int           `json:"losses"`
	Ties   int           `json:"ties"`
	Roster []RosterEntry `json:"roster"`
}

// FormatRecord renders a W-L-T record string.
func FormatRecord(wins, losses, ties int) string {
	return fmt.Sprintf("%d-%d-%d", wins, losses, ties)
}

type DraftPick struct {
	OverallPick int     `json:"overallPick"`
	Round       int     `json:"round"`
	RoundPick   int     `json:"roundPick"`
	PlayerID    int64   `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	TeamID      int64   `json:"teamId"`
	Keeper      bool    `json:"keeper"`
	BidAmount   float64 `json:"bidAmount"`
}

type Draft struct {
	Drafted    bool        `json:"drafted"`
	InProgress bool        `json:"inProgress"`
	Picks      []DraftPick `json:"picks"`
}

// Snapshot is the league state returned by one upstream league read.
type Snapshot struct {
	ID          int64
	SeasonID    int
	Name        string
	ScoringType any
	DraftDate   *time.Time
	Teams       []Team
	Draft       Draft
}

type TeamRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
	Owner  string `json:"owner"`
}

// Summary is returned to the client after a successful connect.
type Summary struct {
	Name        string     `json:"name"`
	Teams       int        `json:"teams"`
	ScoringType string     `json:"scoringType"`
	SeasonID    int        `json:"seasonId"`
	LeagueID    int64      `json:"leagueId"`
	DraftDate   *time.Time `json:"draftDate"`
	TeamData    []TeamRef  `json:"teamData"`
}

// Summarize projects a snapshot into the connect response.
func Summarize(s Snapshot) Summary {
	refs := make([]TeamRef, 0, len(s.Teams))
	for _, t := range s.Teams {
		refs = append(refs, TeamRef{ID: t.ID, Name: t.Name, Abbrev: t.Abbrev, Owner: t.Owner})
	}

	return Summary{
		Name:        s.Name,
		Teams:       len(s.Teams),
		ScoringType: ScoringTypeLabel(s.ScoringType),
		SeasonID:    s.SeasonID,
		LeagueID:    s.ID,
		DraftDate:   s.DraftDate,
		TeamData:    refs,
	}
}

const (
	ScoringStandard = "Standard"
	ScoringPPR      = "PPR"
	ScoringHalfPPR  = "Half PPR"
	ScoringCustom   = "Custom"
)

// ScoringTypeLabel maps the upstream scoring type, which may arrive as a number
// or a string, to a display label. Strings pass through unchanged.
func ScoringTypeLabel(value any) string {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return ScoringStandard
		}
		return v
	case nil:
		return ScoringStandard
	case int:
		return scoringLabelForCode(float64(v))
	case int64:
		return scoringLabelForCode(float64(v))
	case float64:
		return scoringLabelForCode(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ScoringCustom
	}
}

func scoringLabelForCode(code float64) string {
	if code != math.Trunc(code) {
		return ScoringCustom
	}
	switch int(code) {
	case 0:
		return ScoringStandard
	case 1:
		return ScoringPPR
	case 2:
		return ScoringHalfPPR
	default:
		return ScoringCustom
	}
}
