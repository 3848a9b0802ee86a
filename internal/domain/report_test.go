package domain

import "testing"

func TestScorecardAverageFloors(t *testing.T) {
	card := Scorecard{Confidence: 81, Knowledge: 84}
	if got := card.Average(); got != 82 {
		t.Fatalf("Average() = %d, want 82", got)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		score int
		want  ReportStatus
	}{
		{100, StatusRecommended},
		{75, StatusRecommended},
		{74, StatusUnderReview},
		{50, StatusUnderReview},
		{49, StatusNeedsImprovement},
		{0, StatusNeedsImprovement},
	}

	for _, tc := range cases {
		if got := StatusFor(tc.score); got != tc.want {
			t.Errorf("StatusFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
