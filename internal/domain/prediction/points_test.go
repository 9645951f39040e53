package prediction

import "testing"

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name      string
		predicted Score
		actual    Score
		want      int
	}{
		{name: "exact score", predicted: Score{2, 1}, actual: Score{2, 1}, want: PointsExactScore},
		{name: "exact score beats all other tiers", predicted: Score{3, 3}, actual: Score{3, 3}, want: PointsExactScore},
		{name: "goal diff on non-draw", predicted: Score{3, 2}, actual: Score{2, 1}, want: PointsGoalDiff},
		{name: "correct winner only", predicted: Score{1, 0}, actual: Score{2, 1}, want: PointsTendency},
		{name: "wrong tendency", predicted: Score{0, 0}, actual: Score{2, 1}, want: PointsNone},
		{name: "draw predicted, draw happened, wrong score", predicted: Score{2, 2}, actual: Score{1, 1}, want: PointsTendency},
		{name: "goalless draw predicted on draw", predicted: Score{0, 0}, actual: Score{1, 1}, want: PointsTendency},
		{name: "wrong winner, matching diff impossible", predicted: Score{1, 2}, actual: Score{2, 1}, want: PointsNone},
		{name: "away win exact diff", predicted: Score{0, 2}, actual: Score{1, 3}, want: PointsGoalDiff},
		{name: "away win tendency", predicted: Score{0, 1}, actual: Score{1, 3}, want: PointsTendency},
		{name: "draw predicted on decided match", predicted: Score{1, 1}, actual: Score{2, 0}, want: PointsNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointsFor(tt.predicted, tt.actual)
			if got != tt.want {
				t.Fatalf("PointsFor(%v, %v) = %d, want %d", tt.predicted, tt.actual, got, tt.want)
			}
		})
	}
}

// The 3-point tier only exists for decided matches: a prediction with the
// right goal difference on a drawn result lands in the tendency tier.
func TestPointsForDrawRoutesDiffToTendency(t *testing.T) {
	got := PointsFor(Score{2, 2}, Score{0, 0})
	if got != PointsTendency {
		t.Fatalf("matching diff on a draw must award %d, got %d", PointsTendency, got)
	}
}

func TestPointsForIsDeterministic(t *testing.T) {
	predicted := Score{2, 1}
	actual := Score{3, 2}
	first := PointsFor(predicted, actual)
	for i := 0; i < 5; i++ {
		if got := PointsFor(predicted, actual); got != first {
			t.Fatalf("PointsFor not deterministic: %d != %d", got, first)
		}
	}
}

func TestScoreWinner(t *testing.T) {
	if (Score{2, 1}).Winner() != WinnerTeam1 {
		t.Fatal("home win not detected")
	}
	if (Score{0, 4}).Winner() != WinnerTeam2 {
		t.Fatal("away win not detected")
	}
	if (Score{1, 1}).Winner() != WinnerDraw {
		t.Fatal("draw not detected")
	}
}
