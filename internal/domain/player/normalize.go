package player

import "strings"

// Normalize converts a raw upstream record into a canonical Player. It returns
// false when the record has no player object or the player has no name.
func Normalize(raw RawRecord, seasonID int) (Player, bool) {
	if !raw.Usable() {
		return Player{}, false
	}
	src := raw.Player

	id, _ := raw.ID()
	positionCode, position := resolvePosition(src)

	adp, ok := raw.adp()
	if !ok {
		adp = UnknownADP
	}
	projected, _ := raw.projection(seasonID)
	if projected < 0 {
		projected = 0
	}

	out := Player{
		ID:                   id,
		Name:                 strings.TrimSpace(src.FullName),
		Team:                 resolveTeam(src),
		Position:             position,
		PositionCode:         positionCode,
		ProjectedPoints:      projected,
		Ownership:            raw.percentOwned(),
		AverageDraftPosition: adp,
		PercentStarted:       raw.percentStarted(),
		EligiblePositions:    resolveEligible(src, position),
		AvailabilityStatus:   firstString(DefaultAvailability, raw.Wrapper.Status, src.Status),
		IsDroppable:          firstBool(true, raw.Wrapper.Droppable, src.Droppable),
		IsInjured:            firstBool(false, raw.Wrapper.Injured, src.Injured),
		InjuryStatus:         firstString(DefaultInjuryStatus, raw.Wrapper.InjuryStatus, src.InjuryStatus),
		Tier:                 TierForADP(adp),
		OnTeamID:             firstInt64(raw.Wrapper.OnTeamID, src.OnTeamID),
	}
	out.HasRealADP = out.AverageDraftPosition > 0 && out.AverageDraftPosition < RealADPCeiling
	out.HasRealProjections = out.ProjectedPoints > 0

	return out, true
}

// adp resolves direct fields before the nested ownership block. Non-positive
// values are treated as unmeasured.
func (r RawRecord) adp() (float64, bool) {
	candidates := []*float64{r.Wrapper.AverageDraftPosition}
	if r.Player != nil {
		candidates = append(candidates, r.Player.AverageDraftPosition)
		if r.Player.Ownership != nil {
			candidates = append(candidates, r.Player.Ownership.AverageDraftPosition)
		}
	}
	for _, c := range candidates {
		if c != nil && *c > 0 {
			return *c, true
		}
	}
	return 0, false
}

func (r RawRecord) percentOwned() float64 {
	candidates := []*float64{r.Wrapper.PercentOwned}
	if r.Player != nil {
		candidates = append(candidates, r.Player.PercentOwned)
		if r.Player.Ownership != nil {
			candidates = append(candidates, r.Player.Ownership.PercentOwned)
		}
	}
	v, _ := firstFloat(candidates...)
	return v
}

func (r RawRecord) percentStarted() float64 {
	candidates := []*float64{r.Wrapper.PercentStarted}
	if r.Player != nil {
		candidates = append(candidates, r.Player.PercentStarted)
		if r.Player.Ownership != nil {
			candidates = append(candidates, r.Player.Ownership.PercentStarted)
		}
	}
	v, _ := firstFloat(candidates...)
	return v
}

// projection resolves the sibling projected total, then the player-level total,
// then the first stats line matching the season with a projected source.
func (r RawRecord) projection(seasonID int) (float64, bool) {
	if r.Wrapper.ProjectedTotal != nil {
		return *r.Wrapper.ProjectedTotal, true
	}
	if r.Player == nil {
		return 0, false
	}
	if r.Player.ProjectedTotal != nil {
		return *r.Player.ProjectedTotal, true
	}
	for _, stat := range r.Player.Stats {
		if stat.SeasonID == seasonID && stat.StatSourceID == StatSourceProjected {
			return stat.AppliedTotal, true
		}
	}
	return 0, false
}

func resolveTeam(src *Fields) string {
	if src.TeamAbbrev != nil {
		if v := strings.ToUpper(strings.TrimSpace(*src.TeamAbbrev)); v != "" {
			return v
		}
	}
	if src.ProTeamID != nil {
		return TeamAbbreviation(*src.ProTeamID)
	}
	return UnknownTeam
}

func resolvePosition(src *Fields) (int, string) {
	code := 0
	if src.DefaultPositionID != nil {
		code = *src.DefaultPositionID
	}

	if src.Position != nil {
		if name := strings.TrimSpace(*src.Position); name != "" {
			if src.DefaultPositionID == nil {
				code = codeForPositionName(name)
			}
			return code, name
		}
	}
	if src.DefaultPositionID != nil {
		return code, PositionName(code)
	}
	return 0, UnknownPosition
}

func resolveEligible(src *Fields, position string) []string {
	if len(src.EligiblePositions) > 0 {
		out := make([]string, 0, len(src.EligiblePositions))
		for _, item := range src.EligiblePositions {
			if v := strings.TrimSpace(item); v != "" {
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	if len(src.EligibleSlots) > 0 {
		out := make([]string, 0, len(src.EligibleSlots))
		for _, slot := range src.EligibleSlots {
			name := PositionName(slot)
			if name == UnknownPosition {
				continue
			}
			out = append(out, name)
		}
		if len(out) > 0 {
			return out
		}
	}

	return []string{position}
}

func codeForPositionName(name string) int {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "QB":
		return PositionQB
	case "RB":
		return PositionRB
	case "WR":
		return PositionWR
	case "TE":
		return PositionTE
	case "K":
		return PositionK
	case "D/ST", "DST", "DEF":
		return PositionDST
	default:
		return 0
	}
}

func firstFloat(values ...*float64) (float64, bool) {
	for _, v := range values {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func firstString(fallback string, values ...*string) string {
	for _, v := range values {
		if v == nil {
			continue
		}
		if trimmed := strings.TrimSpace(*v); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func firstBool(fallback bool, values ...*bool) bool {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return fallback
}

func firstInt64(values ...*int64) int64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
