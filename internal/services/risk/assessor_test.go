package risk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"international-payments-backend/internal/models"
)

type stubHistory struct {
	recentCount    int
	recentErr      error
	seenCountry    bool
	seenCountryErr error
	sinceSeen      time.Time
}

func (s *stubHistory) CountRecentPayments(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error) {
	s.sinceSeen = since
	return s.recentCount, s.recentErr
}

func (s *stubHistory) HasPaymentToCountry(ctx context.Context, customerID uuid.UUID, country string) (bool, error) {
	return s.seenCountry, s.seenCountryErr
}

func assess(t *testing.T, history *stubHistory, amount int64, country string) *Assessment {
	t.Helper()
	a := NewAssessor(history)
	got, err := a.Assess(context.Background(), uuid.New(), decimal.NewFromInt(amount), country)
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}
	return got
}

func TestAssess_ScoreComponents(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		country   string
		history   stubHistory
		wantScore int
		wantTier  models.AMLRiskLevel
	}{
		{
			name:    "small amount, known destination",
			amount:  5_000,
			country: "DE",
			history: stubHistory{seenCountry: true},
			// no components trigger
			wantScore: 0,
			wantTier:  models.RiskLow,
		},
		{
			name:      "medium amount",
			amount:    20_000,
			country:   "DE",
			history:   stubHistory{seenCountry: true},
			wantScore: 10,
			wantTier:  models.RiskLow,
		},
		{
			name:      "large amount",
			amount:    60_000,
			country:   "DE",
			history:   stubHistory{seenCountry: true},
			wantScore: 20,
			wantTier:  models.RiskMedium,
		},
		{
			name:      "first time destination",
			amount:    60_000,
			country:   "DE",
			history:   stubHistory{},
			wantScore: 35,
			wantTier:  models.RiskMedium,
		},
		{
			name:      "very large amount",
			amount:    150_000,
			country:   "DE",
			history:   stubHistory{seenCountry: true},
			wantScore: 20,
			wantTier:  models.RiskHigh,
		},
		{
			name:      "high risk country",
			amount:    5_000,
			country:   "IR",
			history:   stubHistory{seenCountry: true},
			wantScore: 40,
			wantTier:  models.RiskVeryHigh,
		},
		{
			name:      "velocity",
			amount:    5_000,
			country:   "DE",
			history:   stubHistory{seenCountry: true, recentCount: 4},
			wantScore: 20,
			wantTier:  models.RiskLow,
		},
		{
			name:      "everything at once capped at 95",
			amount:    200_000,
			country:   "KP",
			history:   stubHistory{recentCount: 10},
			wantScore: 95,
			wantTier:  models.RiskVeryHigh,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := assess(t, &tc.history, tc.amount, tc.country)
			if got.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tc.wantScore)
			}
			if got.Tier != tc.wantTier {
				t.Errorf("tier = %s, want %s", got.Tier, tc.wantTier)
			}
		})
	}
}

func TestAssess_Flags(t *testing.T) {
	got := assess(t, &stubHistory{seenCountry: true, recentCount: 5}, 70_000, "DE")

	flags := map[string]bool{}
	for _, f := range got.Flags {
		flags[f] = true
	}
	if !flags[models.FlagHighAmount] {
		t.Error("high_amount flag missing")
	}
	if !flags[models.FlagVelocityCheck] {
		t.Error("velocity_check flag missing")
	}

	// Exactly 3 payments in the window does not trip the velocity check.
	got = assess(t, &stubHistory{seenCountry: true, recentCount: 3}, 1_000, "DE")
	for _, f := range got.Flags {
		if f == models.FlagVelocityCheck {
			t.Error("velocity_check flagged at threshold")
		}
	}
}

// For two otherwise-identical payments, the larger amount never scores lower.
func TestAssess_MonotonicInAmount(t *testing.T) {
	amounts := []int64{100, 5_000, 10_001, 20_000, 50_001, 60_000, 100_001, 500_000}
	prev := -1
	for _, amount := range amounts {
		got := assess(t, &stubHistory{seenCountry: true}, amount, "DE")
		if got.Score < prev {
			t.Fatalf("score decreased to %d at amount %d (previous %d)", got.Score, amount, prev)
		}
		prev = got.Score
	}
}

// The high-risk country check takes precedence over the amount thresholds.
func TestAssess_CountryPrecedenceOverAmount(t *testing.T) {
	got := assess(t, &stubHistory{seenCountry: true}, 500_000, "SY")
	if got.Tier != models.RiskVeryHigh {
		t.Errorf("tier = %s, want very_high", got.Tier)
	}
}

func TestAssess_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	history := &stubHistory{recentCount: 2}

	a := NewAssessor(history).WithClock(func() time.Time { return now })
	customerID := uuid.New()
	amount := decimal.NewFromInt(75_000)

	first, err := a.Assess(context.Background(), customerID, amount, "FR")
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Assess(context.Background(), customerID, amount, "FR")
	if err != nil {
		t.Fatal(err)
	}
	if first.Score != second.Score || first.Tier != second.Tier {
		t.Errorf("assessments differ: %+v vs %+v", first, second)
	}
	if want := now.Add(-velocityWindow); !history.sinceSeen.Equal(want) {
		t.Errorf("velocity window start = %v, want %v", history.sinceSeen, want)
	}
}

func TestAssess_HistoryErrorPropagates(t *testing.T) {
	historyErr := errors.New("db down")
	a := NewAssessor(&stubHistory{seenCountryErr: historyErr})
	_, err := a.Assess(context.Background(), uuid.New(), decimal.NewFromInt(100), "DE")
	if !errors.Is(err, historyErr) {
		t.Fatalf("err = %v, want wrapped history error", err)
	}
}
