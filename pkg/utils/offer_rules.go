package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OfferRule names the eligibility rule an offer failed.
type OfferRule string

const (
	RuleLenderTier    OfferRule = "LENDER_TIER"
	RuleMinimumAmount OfferRule = "MINIMUM_AMOUNT"
	RuleTierCeiling   OfferRule = "TIER_CEILING"
	RuleTermRange     OfferRule = "TERM_RANGE"
	RuleRateRange     OfferRule = "RATE_RANGE"
)

// Offer eligibility limits
const (
	MinLenderLevel = 2
	HighValueLevel = 5
	MinTermMonths  = 1
	MaxTermMonths  = 60
)

var (
	MinOfferAmount   = decimal.NewFromInt(100)
	HighValueCeiling = decimal.NewFromInt(50000)
	MinMonthlyRate   = decimal.RequireFromString("0.1")
	MaxMonthlyRate   = decimal.NewFromInt(20)
)

// OfferValidation is the outcome of ValidateOffer. Rule and Reason are empty when Valid.
type OfferValidation struct {
	Valid  bool      `json:"valid"`
	Rule   OfferRule `json:"rule,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

func reject(rule OfferRule, reason string) OfferValidation {
	return OfferValidation{Valid: false, Rule: rule, Reason: reason}
}

// ValidateOffer checks whether a lender of the given level may publish an offer with these terms.
// Rules are evaluated in order and the first failing rule is reported.
func ValidateOffer(amount decimal.Decimal, termMonths int, monthlyRatePercent decimal.Decimal, lenderLevel int) OfferValidation {
	if lenderLevel < MinLenderLevel {
		return reject(RuleLenderTier,
			fmt.Sprintf("Lenders must reach level %d before creating offers", MinLenderLevel))
	}

	if amount.LessThan(MinOfferAmount) {
		return reject(RuleMinimumAmount,
			fmt.Sprintf("The minimum offer amount is %s", MinOfferAmount.String()))
	}

	if amount.GreaterThan(HighValueCeiling) && lenderLevel < HighValueLevel {
		return reject(RuleTierCeiling,
			fmt.Sprintf("Offers above %s require level %d (current level: %d)",
				HighValueCeiling.String(), HighValueLevel, lenderLevel))
	}

	if termMonths < MinTermMonths || termMonths > MaxTermMonths {
		return reject(RuleTermRange,
			fmt.Sprintf("The term must be between %d and %d months", MinTermMonths, MaxTermMonths))
	}

	if monthlyRatePercent.LessThanOrEqual(MinMonthlyRate) || monthlyRatePercent.GreaterThan(MaxMonthlyRate) {
		return reject(RuleRateRange,
			fmt.Sprintf("The monthly rate must be above %s%% and at most %s%%",
				MinMonthlyRate.String(), MaxMonthlyRate.String()))
	}

	return OfferValidation{Valid: true}
}
