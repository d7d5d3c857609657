package player

// Quality describes how much usable data a player set carries.
type Quality struct {
	Total           int            `json:"total"`
	RealADP         int            `json:"realAdp"`
	RealProjections int            `json:"realProjections"`
	ByTier          map[Tier]int   `json:"byTier"`
	BySource        map[Source]int `json:"bySource"`
}

func Summarize(players []Player) Quality {
	q := Quality{
		Total:    len(players),
		ByTier:   make(map[Tier]int, 5),
		BySource: make(map[Source]int, 2),
	}
	for _, p := range players {
		if p.HasRealADP {
			q.RealADP++
		}
		if p.HasRealProjections {
			q.RealProjections++
		}
		q.ByTier[p.Tier]++
		if p.Source != "" {
			q.BySource[p.Source]++
		}
	}
	return q
}
