package tenancy

import "github.com/shopspring/decimal"

// =============================================================================
// AFFORDABILITY ASSESSMENT
// =============================================================================

// Assessment flags whether a predicted rent puts the tenant at risk of
// paying late.
type Assessment string

const (
	// AssessmentOnTrack: rent is reasonable, tenant likely to pay on time.
	AssessmentOnTrack Assessment = "on_track"
	// AssessmentAtRisk: high rent, tenant may struggle to pay on time.
	AssessmentAtRisk Assessment = "at_risk"
)

// DefaultRentThreshold is the rent level above which a tenant is
// flagged at risk, in the same currency units as PredictedRent.
var DefaultRentThreshold = decimal.NewFromInt(90000)

// AssessAffordability flags rents strictly above the threshold.
func AssessAffordability(rent, threshold decimal.Decimal) Assessment {
	if rent.GreaterThan(threshold) {
		return AssessmentAtRisk
	}
	return AssessmentOnTrack
}
