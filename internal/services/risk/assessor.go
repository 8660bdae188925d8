package risk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"international-payments-backend/internal/models"
	"international-payments-backend/internal/validation"
)

// Score components. Additive, capped at 100.
const (
	scoreLargeAmount    = 20
	scoreMediumAmount   = 10
	scoreNewDestination = 15
	scoreHighRisk       = 40
	scoreVelocity       = 20

	velocityWindow    = 24 * time.Hour
	velocityThreshold = 3
)

var (
	amountMedium   = decimal.NewFromInt(10_000)
	amountLarge    = decimal.NewFromInt(50_000)
	amountVeryHigh = decimal.NewFromInt(100_000)
)

// HistoryReader is the read-only view of a customer's prior payments that
// scoring needs. Implemented by the payment repository.
type HistoryReader interface {
	// CountRecentPayments counts payments submitted by the customer since
	// the given time.
	CountRecentPayments(ctx context.Context, customerID uuid.UUID, since time.Time) (int, error)
	// HasPaymentToCountry reports whether the customer has a prior payment
	// to the destination country that reached completed, processing or sent.
	HasPaymentToCountry(ctx context.Context, customerID uuid.UUID, country string) (bool, error)
}

// Assessment is the fraud/AML signal attached to a payment at creation.
type Assessment struct {
	Score   int
	Flags   []string
	Tier    models.AMLRiskLevel
	Details map[string]interface{}
}

// Assessor computes fraud scores and AML tiers. Deterministic for identical
// inputs and history results; the clock is injectable for tests.
type Assessor struct {
	history HistoryReader
	now     func() time.Time
}

func NewAssessor(history HistoryReader) *Assessor {
	return &Assessor{history: history, now: time.Now}
}

// WithClock overrides the time source.
func (a *Assessor) WithClock(now func() time.Time) *Assessor {
	a.now = now
	return a
}

// Assess scores a candidate payment against the customer's history.
func (a *Assessor) Assess(ctx context.Context, customerID uuid.UUID, amount decimal.Decimal, destinationCountry string) (*Assessment, error) {
	score := 0
	var flags []string
	details := map[string]interface{}{
		"destination_country": destinationCountry,
	}

	switch {
	case amount.GreaterThan(amountLarge):
		score += scoreLargeAmount
		flags = append(flags, models.FlagHighAmount)
		details["amount_component"] = scoreLargeAmount
	case amount.GreaterThan(amountMedium):
		score += scoreMediumAmount
		details["amount_component"] = scoreMediumAmount
	default:
		details["amount_component"] = 0
	}

	seen, err := a.history.HasPaymentToCountry(ctx, customerID, destinationCountry)
	if err != nil {
		return nil, err
	}
	if !seen {
		score += scoreNewDestination
		flags = append(flags, models.FlagNewDestination)
	}
	details["first_time_destination"] = !seen

	highRisk := validation.IsHighRiskCountry(destinationCountry)
	if highRisk {
		score += scoreHighRisk
	}
	details["high_risk_country"] = highRisk

	recent, err := a.history.CountRecentPayments(ctx, customerID, a.now().Add(-velocityWindow))
	if err != nil {
		return nil, err
	}
	if recent > velocityThreshold {
		score += scoreVelocity
		flags = append(flags, models.FlagVelocityCheck)
	}
	details["recent_payment_count"] = recent

	if score > 100 {
		score = 100
	}
	details["final_score"] = score

	return &Assessment{
		Score:   score,
		Flags:   flags,
		Tier:    riskTier(amount, highRisk),
		Details: details,
	}, nil
}

// riskTier classifies the AML tier. The high-risk country check takes
// precedence over the amount thresholds.
func riskTier(amount decimal.Decimal, highRiskCountry bool) models.AMLRiskLevel {
	switch {
	case highRiskCountry:
		return models.RiskVeryHigh
	case amount.GreaterThan(amountVeryHigh):
		return models.RiskHigh
	case amount.GreaterThan(amountLarge):
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
