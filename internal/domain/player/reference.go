package player

const (
	UnknownTeam     = "FA"
	UnknownPosition = "Unknown"
)

const (
	PositionQB  = 1
	PositionRB  = 2
	PositionWR  = 3
	PositionTE  = 4
	PositionK   = 5
	PositionDST = 16
)

// positionNames includes the legacy aliases 0, 6 and 17 that older payloads still send.
var positionNames = map[int]string{
	0:           "QB",
	PositionQB:  "QB",
	PositionRB:  "RB",
	PositionWR:  "WR",
	PositionTE:  "TE",
	PositionK:   "K",
	6:           "TE",
	PositionDST: "D/ST",
	17:          "K",
}

var fantasyPositions = map[int]struct{}{
	PositionQB:  {},
	PositionRB:  {},
	PositionWR:  {},
	PositionTE:  {},
	PositionK:   {},
	PositionDST: {},
}

var teamAbbreviations = map[int]string{
	1:  "ATL",
	2:  "BUF",
	3:  "CHI",
	4:  "CIN",
	5:  "CLE",
	6:  "DAL",
	7:  "DEN",
	8:  "DET",
	9:  "GB",
	10: "TEN",
	11: "IND",
	12: "KC",
	13: "LV",
	14: "LAR",
	15: "MIA",
	16: "MIN",
	17: "NE",
	18: "NO",
	19: "NYG",
	20: "NYJ",
	21: "PHI",
	22: "ARI",
	23: "PIT",
	24: "LAC",
	25: "SF",
	26: "SEA",
	27: "TB",
	28: "WSH",
	29: "CAR",
	30: "JAX",
	33: "BAL",
	34: "HOU",
}

var lineupSlotNames = map[int]string{
	0:  "QB",
	2:  "RB",
	4:  "WR",
	6:  "TE",
	16: "D/ST",
	17: "K",
	20: "BE",
	21: "IR",
	23: "FLEX",
}

// TeamAbbreviation returns the pro team code, or FA for unknown ids.
func TeamAbbreviation(code int) string {
	if name, ok := teamAbbreviations[code]; ok {
		return name
	}
	return UnknownTeam
}

// PositionName returns the short position label for a position code.
func PositionName(code int) string {
	if name, ok := positionNames[code]; ok {
		return name
	}
	return UnknownPosition
}

// LineupSlotName labels a roster lineup slot.
func LineupSlotName(code int) string {
	if name, ok := lineupSlotNames[code]; ok {
		return name
	}
	return UnknownPosition
}

func IsFantasyPosition(code int) bool {
	_, ok := fantasyPositions[code]
	return ok
}
