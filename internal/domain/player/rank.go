package player

import "sort"

// FilterConfig holds the relevance thresholds used by RankAndFilter.
type FilterConfig struct {
	MinOwnership    float64
	ADPCeiling      float64
	LooseADPCeiling float64
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinOwnership:    1,
		ADPCeiling:      400,
		LooseADPCeiling: 500,
	}
}

// NormalizeFilterConfig fills unset thresholds with defaults.
func NormalizeFilterConfig(cfg FilterConfig) FilterConfig {
	defaults := DefaultFilterConfig()
	if cfg.MinOwnership < 0 {
		cfg.MinOwnership = defaults.MinOwnership
	}
	if cfg.ADPCeiling <= 0 {
		cfg.ADPCeiling = defaults.ADPCeiling
	}
	if cfg.LooseADPCeiling <= 0 {
		cfg.LooseADPCeiling = defaults.LooseADPCeiling
	}
	return cfg
}

// RankAndFilter drops malformed or irrelevant players and returns the rest in
// draft order. The input slice is not modified.
func RankAndFilter(players []Player, cfg FilterConfig) []Player {
	cfg = NormalizeFilterConfig(cfg)

	out := make([]Player, 0, len(players))
	for _, p := range players {
		if err := p.Validate(); err != nil {
			continue
		}
		if !relevant(p, cfg) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rankLess(out[i], out[j])
	})

	return out
}

func relevant(p Player, cfg FilterConfig) bool {
	adp := p.AverageDraftPosition
	switch {
	case p.Ownership > cfg.MinOwnership:
		return true
	case adp > 0 && adp < cfg.ADPCeiling:
		return true
	case p.ProjectedPoints > 0:
		return true
	case p.Ownership > 0, adp < cfg.LooseADPCeiling, p.Rostered():
		return true
	default:
		return false
	}
}

// rankLess orders measured ADP first (ascending), then ownership and projected
// points descending.
func rankLess(a, b Player) bool {
	if a.HasRealADP != b.HasRealADP {
		return a.HasRealADP
	}
	if a.HasRealADP && a.AverageDraftPosition != b.AverageDraftPosition {
		return a.AverageDraftPosition < b.AverageDraftPosition
	}
	if a.Ownership != b.Ownership {
		return a.Ownership > b.Ownership
	}
	return a.ProjectedPoints > b.ProjectedPoints
}
