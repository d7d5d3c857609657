package espn

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/player"
)

const unknownOwner = "Unknown"

func mapLeague(payload leagueDTO, lc league.Context) league.Snapshot {
	seasonID := payload.SeasonID
	if seasonID == 0 {
		seasonID = lc.SeasonID
	}
	leagueID := payload.ID
	if leagueID == 0 {
		leagueID = lc.LeagueID
	}

	members := make(map[string]memberDTO, len(payload.Members))
	for _, m := range payload.Members {
		members[strings.ToUpper(m.ID)] = m
	}

	playerNames := make(map[int64]string, 256)
	teams := make([]league.Team, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		team := mapTeam(t, members, seasonID)
		for _, entry := range team.Roster {
			playerNames[entry.PlayerID] = entry.Name
		}
		teams = append(teams, team)
	}
	for _, p := range payload.Players {
		if rec, ok := player.Normalize(p.toRawRecord(), seasonID); ok {
			if _, exists := playerNames[rec.ID]; !exists {
				playerNames[rec.ID] = rec.Name
			}
		}
	}

	return league.Snapshot{
		ID:          leagueID,
		SeasonID:    seasonID,
		Name:        strings.TrimSpace(payload.Settings.Name),
		ScoringType: payload.Settings.ScoringSettings.ScoringType,
		DraftDate:   epochMillis(payload.Settings.DraftSettings.Date),
		Teams:       teams,
		Draft:       mapDraft(payload.DraftDetail, playerNames),
	}
}

func mapTeam(t teamDTO, members map[string]memberDTO, seasonID int) league.Team {
	wins := t.Record.Overall.Wins
	losses := t.Record.Overall.Losses
	ties := t.Record.Overall.Ties

	roster := make([]league.RosterEntry, 0, len(t.Roster.Entries))
	for _, entry := range t.Roster.Entries {
		if item, ok := mapRosterEntry(entry, seasonID); ok {
			roster = append(roster, item)
		}
	}

	return league.Team{
		ID:     t.ID,
		Name:   teamName(t),
		Abbrev: strings.TrimSpace(t.Abbrev),
		Owner:  ownerName(t, members),
		Record: league.FormatRecord(wins, losses, ties),
		Wins:   wins,
		Losses: losses,
		Ties:   ties,
		Roster: roster,
	}
}

func mapRosterEntry(entry rosterEntryDTO, seasonID int) (league.RosterEntry, bool) {
	if entry.PlayerPoolEntry == nil {
		return league.RosterEntry{}, false
	}
	p, ok := player.Normalize(entry.PlayerPoolEntry.toRawRecord(), seasonID)
	if !ok {
		return league.RosterEntry{}, false
	}
	id := p.ID
	if id == 0 {
		id = entry.PlayerID
	}

	return league.RosterEntry{
		PlayerID:        id,
		Name:            p.Name,
		Position:        p.Position,
		Team:            p.Team,
		LineupSlotID:    entry.LineupSlotID,
		LineupSlot:      player.LineupSlotName(entry.LineupSlotID),
		ProjectedPoints: p.ProjectedPoints,
	}, true
}

// teamName prefers the explicit name, then "location nickname", then a
// numbered placeholder.
func teamName(t teamDTO) string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(strings.TrimSpace(t.Location) + " " + strings.TrimSpace(t.Nickname)); name != "" {
		return name
	}
	return fmt.Sprintf("Team %d", t.ID)
}

func ownerName(t teamDTO, members map[string]memberDTO) string {
	ids := make([]string, 0, len(t.Owners)+1)
	if t.PrimaryOwner != "" {
		ids = append(ids, t.PrimaryOwner)
	}
	ids = append(ids, t.Owners...)

	for _, id := range ids {
		m, ok := members[strings.ToUpper(id)]
		if !ok {
			continue
		}
		if name := strings.TrimSpace(m.DisplayName); name != "" {
			return name
		}
		if name := strings.TrimSpace(m.FirstName + " " + m.LastName); name != "" {
			return name
		}
	}
	return unknownOwner
}

func mapDraft(detail *draftDetailDTO, playerNames map[int64]string) league.Draft {
	if detail == nil {
		return league.Draft{Picks: []league.DraftPick{}}
	}

	picks := make([]league.DraftPick, 0, len(detail.Picks))
	for _, p := range detail.Picks {
		name, ok := playerNames[p.PlayerID]
		if !ok {
			name = fmt.Sprintf("Player %d", p.PlayerID)
		}
		picks = append(picks, league.DraftPick{
			OverallPick: p.OverallPickNumber,
			Round:       p.RoundID,
			RoundPick:   p.RoundPickNumber,
			PlayerID:    p.PlayerID,
			PlayerName:  name,
			TeamID:      p.TeamID,
			Keeper:      p.Keeper,
			BidAmount:   p.BidAmount,
		})
	}

	return league.Draft{
		Drafted:    detail.Drafted,
		InProgress: detail.InProgress,
		Picks:      picks,
	}
}

func epochMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}
