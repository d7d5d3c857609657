package player

import (
	"fmt"
	"strings"
)

// Tier buckets a player by average draft position.
type Tier string

const (
	TierElite   Tier = "elite"
	TierStarter Tier = "starter"
	TierDepth   Tier = "depth"
	TierPopular Tier = "popular"
	TierSleeper Tier = "sleeper"
)

// Source records which upstream strategy produced a player.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

const (
	// UnknownADP marks a player whose draft popularity was never measured.
	UnknownADP = 999.0
	// RealADPCeiling is the exclusive upper bound for an ADP considered measured.
	RealADPCeiling = 500.0

	DefaultAvailability = "FREEAGENT"
	DefaultInjuryStatus = "ACTIVE"
	RosteredStatus      = "ONTEAM"
)

// Player is the canonical, UI-friendly player record.
type Player struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	Team                 string   `json:"team"`
	Position             string   `json:"position"`
	PositionCode         int      `json:"positionCode"`
	ProjectedPoints      float64  `json:"projectedPoints"`
	Ownership            float64  `json:"ownership"`
	AverageDraftPosition float64  `json:"averageDraftPosition"`
	PercentStarted       float64  `json:"percentStarted"`
	EligiblePositions    []string `json:"eligiblePositions"`
	AvailabilityStatus   string   `json:"availabilityStatus"`
	IsDroppable          bool     `json:"isDroppable"`
	IsInjured            bool     `json:"isInjured"`
	InjuryStatus         string   `json:"injuryStatus"`
	Tier                 Tier     `json:"tier"`
	HasRealADP           bool     `json:"hasRealADP"`
	HasRealProjections   bool     `json:"hasRealProjections"`
	OnTeamID             int64    `json:"onTeamId"`
	Source               Source   `json:"source,omitempty"`
}

// Rostered reports whether the player is held by a team in the connected league.
func (p Player) Rostered() bool {
	return p.OnTeamID > 0 || p.AvailabilityStatus == RosteredStatus
}

// Validate reports whether the player can appear in a ranked pool.
func (p Player) Validate() error {
	if len([]rune(strings.TrimSpace(p.Name))) < 2 {
		return fmt.Errorf("player name is required")
	}
	if !IsFantasyPosition(p.PositionCode) {
		return fmt.Errorf("invalid fantasy position code: %d", p.PositionCode)
	}
	if p.ProjectedPoints < 0 {
		return fmt.Errorf("projected points must not be negative")
	}

	return nil
}

// TierForADP maps an average draft position to its tier. Bounds are inclusive.
func TierForADP(adp float64) Tier {
	switch {
	case adp <= 24:
		return TierElite
	case adp <= 60:
		return TierStarter
	case adp <= 120:
		return TierDepth
	case adp <= 180:
		return TierPopular
	default:
		return TierSleeper
	}
}
