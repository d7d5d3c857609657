package player

import (
	"reflect"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestNormalize_RejectsMissingOrEmptyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  RawRecord
	}{
		{name: "no player object", raw: RawRecord{Wrapped: true, Wrapper: EntryFields{ID: ptr(int64(7))}}},
		{name: "empty name", raw: RawRecord{Player: &Fields{ID: ptr(int64(7)), FullName: ""}}},
		{name: "whitespace name", raw: RawRecord{Player: &Fields{ID: ptr(int64(7)), FullName: "   "}}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := Normalize(tc.raw, 2024); ok {
				t.Fatalf("expected malformed record to be rejected")
			}
		})
	}
}

func TestNormalize_BarePlayerDefaults(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Player: &Fields{
		ID:                ptr(int64(3139477)),
		FullName:          " Patrick Mahomes ",
		ProTeamID:         ptr(12),
		DefaultPositionID: ptr(PositionQB),
	}}

	got, ok := Normalize(raw, 2024)
	if !ok {
		t.Fatalf("expected record to normalize")
	}

	if got.ID != 3139477 || got.Name != "Patrick Mahomes" {
		t.Fatalf("unexpected identity: id=%d name=%q", got.ID, got.Name)
	}
	if got.Team != "KC" || got.Position != "QB" || got.PositionCode != PositionQB {
		t.Fatalf("unexpected team/position: %s %s %d", got.Team, got.Position, got.PositionCode)
	}
	if got.AverageDraftPosition != UnknownADP || got.HasRealADP {
		t.Fatalf("expected unknown adp sentinel, got %v real=%v", got.AverageDraftPosition, got.HasRealADP)
	}
	if got.Tier != TierSleeper {
		t.Fatalf("expected sleeper tier, got %s", got.Tier)
	}
	if got.AvailabilityStatus != DefaultAvailability || got.InjuryStatus != DefaultInjuryStatus {
		t.Fatalf("unexpected status defaults: %s %s", got.AvailabilityStatus, got.InjuryStatus)
	}
	if !got.IsDroppable || got.IsInjured {
		t.Fatalf("unexpected flag defaults: droppable=%v injured=%v", got.IsDroppable, got.IsInjured)
	}
	if !reflect.DeepEqual(got.EligiblePositions, []string{"QB"}) {
		t.Fatalf("expected eligible fallback to position, got %v", got.EligiblePositions)
	}
	if got.ProjectedPoints != 0 || got.HasRealProjections {
		t.Fatalf("expected no projection, got %v", got.ProjectedPoints)
	}
}

func TestNormalize_WrapperFieldsWinOverPlayerFields(t *testing.T) {
	t.Parallel()

	raw := RawRecord{
		Wrapped: true,
		Wrapper: EntryFields{
			ID:                   ptr(int64(1)),
			OnTeamID:             ptr(int64(4)),
			Status:               ptr("ONTEAM"),
			AverageDraftPosition: ptr(12.5),
			PercentOwned:         ptr(99.1),
			ProjectedTotal:       ptr(310.0),
			Droppable:            ptr(false),
			InjuryStatus:         ptr("QUESTIONABLE"),
		},
		Player: &Fields{
			ID:                   ptr(int64(1)),
			FullName:             "Christian McCaffrey",
			TeamAbbrev:           ptr("sf"),
			Position:             ptr("RB"),
			AverageDraftPosition: ptr(40.0),
			PercentOwned:         ptr(10.0),
			ProjectedTotal:       ptr(100.0),
			Droppable:            ptr(true),
			Injured:              ptr(true),
			InjuryStatus:         ptr("OUT"),
			Ownership:            &Ownership{AverageDraftPosition: ptr(80.0), PercentOwned: ptr(1.0)},
		},
	}

	got, ok := Normalize(raw, 2024)
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if got.AverageDraftPosition != 12.5 || got.Tier != TierElite || !got.HasRealADP {
		t.Fatalf("expected wrapper adp 12.5 elite, got %v %s", got.AverageDraftPosition, got.Tier)
	}
	if got.Ownership != 99.1 {
		t.Fatalf("expected wrapper ownership, got %v", got.Ownership)
	}
	if got.ProjectedPoints != 310 {
		t.Fatalf("expected wrapper projection, got %v", got.ProjectedPoints)
	}
	if got.IsDroppable {
		t.Fatalf("expected wrapper droppable=false")
	}
	if !got.IsInjured {
		t.Fatalf("expected player injured flag when wrapper omits it")
	}
	if got.InjuryStatus != "QUESTIONABLE" || got.AvailabilityStatus != "ONTEAM" {
		t.Fatalf("unexpected status: %s %s", got.InjuryStatus, got.AvailabilityStatus)
	}
	if got.Team != "SF" || got.PositionCode != PositionRB {
		t.Fatalf("unexpected team/position code: %s %d", got.Team, got.PositionCode)
	}
	if got.OnTeamID != 4 || !got.Rostered() {
		t.Fatalf("expected rostered by team 4, got %d", got.OnTeamID)
	}
}

func TestNormalize_ADPFallsBackToOwnership(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Player: &Fields{
		FullName:          "Justin Jefferson",
		DefaultPositionID: ptr(PositionWR),
		Ownership:         &Ownership{AverageDraftPosition: ptr(3.2), PercentOwned: ptr(99.9), PercentStarted: ptr(97.0)},
	}}

	got, _ := Normalize(raw, 2024)
	if got.AverageDraftPosition != 3.2 || got.Ownership != 99.9 || got.PercentStarted != 97 {
		t.Fatalf("expected ownership block values, got adp=%v own=%v started=%v", got.AverageDraftPosition, got.Ownership, got.PercentStarted)
	}
}

func TestNormalize_ZeroADPIsUnmeasured(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Player: &Fields{
		FullName:             "Deep Sleeper",
		DefaultPositionID:    ptr(PositionTE),
		AverageDraftPosition: ptr(0.0),
		Ownership:            &Ownership{AverageDraftPosition: ptr(0.0)},
	}}

	got, _ := Normalize(raw, 2024)
	if got.AverageDraftPosition != UnknownADP || got.HasRealADP {
		t.Fatalf("expected sentinel adp, got %v", got.AverageDraftPosition)
	}
}

func TestNormalize_ProjectionFromStatsLine(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Player: &Fields{
		FullName:          "Tyreek Hill",
		DefaultPositionID: ptr(PositionWR),
		Stats: []StatLine{
			{SeasonID: 2023, StatSourceID: StatSourceProjected, AppliedTotal: 10},
			{SeasonID: 2024, StatSourceID: 0, AppliedTotal: 20},
			{SeasonID: 2024, StatSourceID: StatSourceProjected, AppliedTotal: 250.4},
			{SeasonID: 2024, StatSourceID: StatSourceProjected, AppliedTotal: 1},
		},
	}}

	got, _ := Normalize(raw, 2024)
	if got.ProjectedPoints != 250.4 || !got.HasRealProjections {
		t.Fatalf("expected first matching projected stat 250.4, got %v", got.ProjectedPoints)
	}
}

func TestNormalize_NegativeProjectionClampsToZero(t *testing.T) {
	t.Parallel()

	raw := RawRecord{
		Wrapped: true,
		Wrapper: EntryFields{ProjectedTotal: ptr(-3.0)},
		Player:  &Fields{FullName: "Broken Kicker", DefaultPositionID: ptr(PositionK)},
	}

	got, _ := Normalize(raw, 2024)
	if got.ProjectedPoints != 0 || got.HasRealProjections {
		t.Fatalf("expected clamp to zero, got %v", got.ProjectedPoints)
	}
}

func TestNormalize_EligibleFromSlotsDropsUnknown(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Player: &Fields{
		FullName:          "Travis Kelce",
		DefaultPositionID: ptr(PositionTE),
		EligibleSlots:     []int{4, 6, 23, 20, 21},
	}}

	got, _ := Normalize(raw, 2024)
	if !reflect.DeepEqual(got.EligiblePositions, []string{"TE", "TE"}) {
		t.Fatalf("unexpected eligible positions: %v", got.EligiblePositions)
	}
}

func TestNormalize_UnknownTeamAndPosition(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Player: &Fields{FullName: "Mystery Man", ProTeamID: ptr(99)}}

	got, _ := Normalize(raw, 2024)
	if got.Team != UnknownTeam || got.Position != UnknownPosition || got.PositionCode != 0 {
		t.Fatalf("expected unknown fallbacks, got %s %s %d", got.Team, got.Position, got.PositionCode)
	}
}

func TestNormalize_IsDeterministic(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Player: &Fields{
		ID:                ptr(int64(5)),
		FullName:          "Josh Allen",
		ProTeamID:         ptr(2),
		DefaultPositionID: ptr(PositionQB),
		EligibleSlots:     []int{0, 20},
		Ownership:         &Ownership{AverageDraftPosition: ptr(30.0), PercentOwned: ptr(98.0)},
	}}

	first, _ := Normalize(raw, 2024)
	second, _ := Normalize(raw, 2024)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %+v vs %+v", first, second)
	}
}

func TestTierForADP_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		adp  float64
		want Tier
	}{
		{adp: 10, want: TierElite},
		{adp: 24, want: TierElite},
		{adp: 25, want: TierStarter},
		{adp: 60, want: TierStarter},
		{adp: 61, want: TierDepth},
		{adp: 120, want: TierDepth},
		{adp: 121, want: TierPopular},
		{adp: 180, want: TierPopular},
		{adp: 181, want: TierSleeper},
		{adp: UnknownADP, want: TierSleeper},
	}

	for _, tc := range tests {
		if got := TierForADP(tc.adp); got != tc.want {
			t.Fatalf("TierForADP(%v) = %s, want %s", tc.adp, got, tc.want)
		}
	}
}

func TestReferenceTables(t *testing.T) {
	t.Parallel()

	if got := PositionName(16); got != "D/ST" {
		t.Fatalf("PositionName(16) = %s", got)
	}
	if got := PositionName(17); got != "K" {
		t.Fatalf("PositionName(17) = %s", got)
	}
	if got := PositionName(42); got != UnknownPosition {
		t.Fatalf("PositionName(42) = %s", got)
	}
	if got := TeamAbbreviation(34); got != "HOU" {
		t.Fatalf("TeamAbbreviation(34) = %s", got)
	}
	if got := TeamAbbreviation(31); got != UnknownTeam {
		t.Fatalf("TeamAbbreviation(31) = %s", got)
	}
	if got := LineupSlotName(23); got != "FLEX" {
		t.Fatalf("LineupSlotName(23) = %s", got)
	}
}
