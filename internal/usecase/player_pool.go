package usecase

import (
	"context"

	"github.com/riskibarqy/draft-assistant-api/internal/domain/league"
	"github.com/riskibarqy/draft-assistant-api/internal/domain/player"
)

const (
	StrategyLeaguePool    = "league-pool"
	StrategySeasonPlayers = "season-players"
)

type poolFetchFunc func(ctx context.Context, lc league.Context, limit int) ([]player.RawRecord, error)

// poolStrategy is one way of acquiring raw player records.
type poolStrategy struct {
	name   string
	source player.Source
	fetch  poolFetchFunc
}

// poolQuality scores a raw record set by how much draft data it carries.
type poolQuality struct {
	Count           int `json:"count"`
	WithADP         int `json:"withAdp"`
	WithProjections int `json:"withProjections"`
}

func assessPool(records []player.RawRecord, seasonID int) poolQuality {
	var q poolQuality
	for _, r := range records {
		if !r.Usable() {
			continue
		}
		q.Count++
		if r.HasADP() {
			q.WithADP++
		}
		if r.HasProjection(seasonID) {
			q.WithProjections++
		}
	}
	return q
}

func (q poolQuality) sufficient(threshold int) bool {
	return q.Count >= threshold
}

type poolResult struct {
	name    string
	source  player.Source
	records []player.RawRecord
	quality poolQuality
	err     error
}

func (r poolResult) usable() bool {
	return r.err == nil && r.quality.Count > 0
}

func runStrategy(ctx context.Context, s poolStrategy, lc league.Context, limit int) poolResult {
	records, err := s.fetch(ctx, lc, limit)
	res := poolResult{
		name:    s.name,
		source:  s.source,
		records: records,
		err:     err,
	}
	if err == nil {
		res.quality = assessPool(records, lc.SeasonID)
	}
	return res
}

type sourcedRecord struct {
	raw    player.RawRecord
	source player.Source
}

// mergePoolResults keeps the first result with usable records as the base and
// appends records from other results whose id was not seen before. Repeated ids
// keep their first occurrence. Records outside the base without an id cannot be
// matched and are dropped.
func mergePoolResults(results ...poolResult) []sourcedRecord {
	total := 0
	for _, r := range results {
		total += len(r.records)
	}

	out := make([]sourcedRecord, 0, total)
	seen := make(map[int64]struct{}, total)
	baseTaken := false
	for _, r := range results {
		if r.err != nil {
			continue
		}
		base := !baseTaken && r.usable()
		for _, raw := range r.records {
			id, hasID := raw.ID()
			if !hasID {
				if base {
					out = append(out, sourcedRecord{raw: raw, source: r.source})
				}
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, sourcedRecord{raw: raw, source: r.source})
		}
		if base {
			baseTaken = true
		}
	}

	return out
}

func normalizePool(records []sourcedRecord, seasonID int) []player.Player {
	out := make([]player.Player, 0, len(records))
	for _, rec := range records {
		p, ok := player.Normalize(rec.raw, seasonID)
		if !ok {
			continue
		}
		p.Source = rec.source
		out = append(out, p)
	}
	return out
}
