package player

import "strings"

// StatSourceProjected is the upstream stat source id for projections.
const StatSourceProjected = 1

// RawRecord is an upstream player record after boundary decoding. Either a bare
// player object (Wrapped=false) or a pool entry holding the player plus sibling
// fields (Wrapped=true). Nil pointers mean the upstream omitted the field.
type RawRecord struct {
	Wrapped bool
	Wrapper EntryFields
	Player  *Fields
}

// EntryFields are the pool-entry siblings of a wrapped player.
type EntryFields struct {
	ID                   *int64
	OnTeamID             *int64
	Status               *string
	AverageDraftPosition *float64
	PercentOwned         *float64
	PercentStarted       *float64
	ProjectedTotal       *float64
	Droppable            *bool
	Injured              *bool
	InjuryStatus         *string
}

// Fields are the attributes read from the player object itself.
type Fields struct {
	ID                   *int64
	FullName             string
	TeamAbbrev           *string
	ProTeamID            *int
	Position             *string
	DefaultPositionID    *int
	EligiblePositions    []string
	EligibleSlots        []int
	OnTeamID             *int64
	Status               *string
	AverageDraftPosition *float64
	PercentOwned         *float64
	PercentStarted       *float64
	ProjectedTotal       *float64
	Droppable            *bool
	Injured              *bool
	InjuryStatus         *string
	Ownership            *Ownership
	Stats                []StatLine
}

type Ownership struct {
	AverageDraftPosition *float64
	PercentOwned         *float64
	PercentStarted       *float64
}

type StatLine struct {
	SeasonID        int
	StatSourceID    int
	ScoringPeriodID int
	AppliedTotal    float64
}

// ID returns the identity used for merging, preferring the player object id.
func (r RawRecord) ID() (int64, bool) {
	if r.Player != nil && r.Player.ID != nil {
		return *r.Player.ID, true
	}
	if r.Wrapper.ID != nil {
		return *r.Wrapper.ID, true
	}
	return 0, false
}

// Usable reports whether the record carries a player with a name.
func (r RawRecord) Usable() bool {
	return r.Player != nil && strings.TrimSpace(r.Player.FullName) != ""
}

// HasADP reports whether any ADP source is present.
func (r RawRecord) HasADP() bool {
	_, ok := r.adp()
	return ok
}

// HasProjection reports whether any positive projection source is present.
func (r RawRecord) HasProjection(seasonID int) bool {
	v, ok := r.projection(seasonID)
	return ok && v > 0
}
