package espn

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/draft-assistant-api/internal/domain/player"
)

// looseString accepts a JSON string and ignores any other token type, so a
// field that changes shape upstream does not fail the whole document.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	v, err := strconv.Unquote(string(data))
	if err != nil {
		return nil
	}
	*s = looseString(v)
	return nil
}

func (s looseString) ptr() *string {
	v := strings.TrimSpace(string(s))
	if v == "" {
		return nil
	}
	return &v
}

type appliedTotalDTO struct {
	AppliedTotal *float64 `json:"appliedTotal"`
}

type ownershipDTO struct {
	AverageDraftPosition *float64 `json:"averageDraftPosition"`
	PercentOwned         *float64 `json:"percentOwned"`
	PercentStarted       *float64 `json:"percentStarted"`
}

type statDTO struct {
	SeasonID        int     `json:"seasonId"`
	StatSourceID    int     `json:"statSourceId"`
	ScoringPeriodID int     `json:"scoringPeriodId"`
	AppliedTotal    float64 `json:"appliedTotal"`
}

// playerEntryDTO decodes both upstream shapes: a pool entry that wraps a
// nested "player" object, and a bare player object.
type playerEntryDTO struct {
	ID                   *int64           `json:"id"`
	OnTeamID             *int64           `json:"onTeamId"`
	Status               *string          `json:"status"`
	FullName             string           `json:"fullName"`
	ProTeamID            *int             `json:"proTeamId"`
	ProTeam              looseString      `json:"proTeam"`
	Team                 looseString      `json:"team"`
	DefaultPositionID    *int             `json:"defaultPositionId"`
	Position             looseString      `json:"position"`
	EligibleSlots        []int            `json:"eligibleSlots"`
	EligiblePositions    []string         `json:"eligiblePositions"`
	AverageDraftPosition *float64         `json:"averageDraftPosition"`
	PercentOwned         *float64         `json:"percentOwned"`
	PercentStarted       *float64         `json:"percentStarted"`
	ProjectedRawStats    *appliedTotalDTO `json:"projectedRawStats"`
	Droppable            *bool            `json:"droppable"`
	Injured              *bool            `json:"injured"`
	InjuryStatus         *string          `json:"injuryStatus"`
	Ownership            *ownershipDTO    `json:"ownership"`
	Stats                []statDTO        `json:"stats"`
	Player               *playerEntryDTO  `json:"player"`
}

func (d playerEntryDTO) projectedTotal() *float64 {
	if d.ProjectedRawStats == nil {
		return nil
	}
	return d.ProjectedRawStats.AppliedTotal
}

func (d playerEntryDTO) toRawRecord() player.RawRecord {
	if d.Player == nil {
		return player.RawRecord{Player: d.fields()}
	}

	return player.RawRecord{
		Wrapped: true,
		Wrapper: player.EntryFields{
			ID:                   d.ID,
			OnTeamID:             d.OnTeamID,
			Status:               d.Status,
			AverageDraftPosition: d.AverageDraftPosition,
			PercentOwned:         d.PercentOwned,
			PercentStarted:       d.PercentStarted,
			ProjectedTotal:       d.projectedTotal(),
			Droppable:            d.Droppable,
			Injured:              d.Injured,
			InjuryStatus:         d.InjuryStatus,
		},
		Player: d.Player.fields(),
	}
}

func (d playerEntryDTO) fields() *player.Fields {
	out := &player.Fields{
		ID:                   d.ID,
		FullName:             d.FullName,
		ProTeamID:            d.ProTeamID,
		DefaultPositionID:    d.DefaultPositionID,
		Position:             d.Position.ptr(),
		EligiblePositions:    d.EligiblePositions,
		EligibleSlots:        d.EligibleSlots,
		OnTeamID:             d.OnTeamID,
		Status:               d.Status,
		AverageDraftPosition: d.AverageDraftPosition,
		PercentOwned:         d.PercentOwned,
		PercentStarted:       d.PercentStarted,
		ProjectedTotal:       d.projectedTotal(),
		Droppable:            d.Droppable,
		Injured:              d.Injured,
		InjuryStatus:         d.InjuryStatus,
	}
	if abbrev := d.ProTeam.ptr(); abbrev != nil {
		out.TeamAbbrev = abbrev
	} else {
		out.TeamAbbrev = d.Team.ptr()
	}
	if d.Ownership != nil {
		out.Ownership = &player.Ownership{
			AverageDraftPosition: d.Ownership.AverageDraftPosition,
			PercentOwned:         d.Ownership.PercentOwned,
			PercentStarted:       d.Ownership.PercentStarted,
		}
	}
	if len(d.Stats) > 0 {
		out.Stats = make([]player.StatLine, 0, len(d.Stats))
		for _, s := range d.Stats {
			out.Stats = append(out.Stats, player.StatLine{
				SeasonID:        s.SeasonID,
				StatSourceID:    s.StatSourceID,
				ScoringPeriodID: s.ScoringPeriodID,
				AppliedTotal:    s.AppliedTotal,
			})
		}
	}
	return out
}

func toRawRecords(items []playerEntryDTO) []player.RawRecord {
	out := make([]player.RawRecord, 0, len(items))
	for _, item := range items {
		out = append(out, item.toRawRecord())
	}
	return out
}

type playerPoolDTO struct {
	Players []playerEntryDTO `json:"players"`
}

type leagueDTO struct {
	ID          int64            `json:"id"`
	SeasonID    int              `json:"seasonId"`
	Settings    settingsDTO      `json:"settings"`
	Teams       []teamDTO        `json:"teams"`
	Members     []memberDTO      `json:"members"`
	DraftDetail *draftDetailDTO  `json:"draftDetail"`
	Players     []playerEntryDTO `json:"players"`
}

type settingsDTO struct {
	Name            string             `json:"name"`
	Size            int                `json:"size"`
	ScoringSettings scoringSettingsDTO `json:"scoringSettings"`
	DraftSettings   draftSettingsDTO   `json:"draftSettings"`
}

type scoringSettingsDTO struct {
	ScoringType any `json:"scoringType"`
}

type draftSettingsDTO struct {
	Date int64  `json:"date"`
	Type string `json:"type"`
}

type teamDTO struct {
	ID           int64     `json:"id"`
	Abbrev       string    `json:"abbrev"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	Nickname     string    `json:"nickname"`
	PrimaryOwner string    `json:"primaryOwner"`
	Owners       []string  `json:"owners"`
	Record       recordDTO `json:"record"`
	Roster       rosterDTO `json:"roster"`
}

type recordDTO struct {
	Overall struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Ties   int `json:"ties"`
	} `json:"overall"`
}

type rosterDTO struct {
	Entries []rosterEntryDTO `json:"entries"`
}

type rosterEntryDTO struct {
	PlayerID        int64           `json:"playerId"`
	LineupSlotID    int             `json:"lineupSlotId"`
	PlayerPoolEntry *playerEntryDTO `json:"playerPoolEntry"`
}

type memberDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type draftDetailDTO struct {
	Drafted    bool           `json:"drafted"`
	InProgress bool           `json:"inProgress"`
	Picks      []draftPickDTO `json:"picks"`
}

type draftPickDTO struct {
	OverallPickNumber int     `json:"overallPickNumber"`
	RoundID           int     `json:"roundId"`
	RoundPickNumber   int     `json:"roundPickNumber"`
	PlayerID          int64   `json:"playerId"`
	TeamID            int64   `json:"teamId"`
	Keeper            bool    `json:"keeper"`
	BidAmount         float64 `json:"bidAmount"`
}
