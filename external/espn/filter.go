package espn

import (
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// Lineup slot ids for the fantasy-relevant positions: QB, RB, WR, TE, D/ST, K.
var fantasySlotIDs = []int{0, 2, 4, 6, 16, 17}

type playerFilter struct {
	Players playerFilterBody `json:"players"`
}

type playerFilterBody struct {
	Limit         int           `json:"limit"`
	SortPercOwned sortSpec      `json:"sortPercOwned"`
	FilterSlotIDs *filterValues `json:"filterSlotIds,omitempty"`
}

type sortSpec struct {
	SortPriority int  `json:"sortPriority"`
	SortAsc      bool `json:"sortAsc"`
}

type filterValues struct {
	Value []int `json:"value"`
}

// buildPlayerFilter renders the X-Fantasy-Filter header value. Players are
// sorted by percent owned, most owned first.
func buildPlayerFilter(limit int, slotsOnly bool) (string, error) {
	if limit <= 0 {
		return "", crerr.Newf("player filter limit must be positive, got %d", limit)
	}

	filter := playerFilter{Players: playerFilterBody{
		Limit:         limit,
		SortPercOwned: sortSpec{SortPriority: 1, SortAsc: false},
	}}
	if slotsOnly {
		filter.Players.FilterSlotIDs = &filterValues{Value: fantasySlotIDs}
	}

	raw, err := sonic.Marshal(filter)
	if err != nil {
		return "", crerr.Wrap(err, "encode player filter")
	}
	return string(raw), nil
}
