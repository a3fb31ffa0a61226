package credit

import (
	"errors"
	"fmt"

	"github.com/mindcredit/mindcredit-api/internal/domain"
)

// RiskTier names one of the fixed risk-score bands.
type RiskTier string

// Risk tiers, ordered from riskiest to safest.
const (
	TierVeryHighRisk RiskTier = "VERY_HIGH_RISK"
	TierHighRisk     RiskTier = "HIGH_RISK"
	TierModerateRisk RiskTier = "MODERATE_RISK"
	TierLowRisk      RiskTier = "LOW_RISK"
	TierVeryLowRisk  RiskTier = "VERY_LOW_RISK"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid credit parameters")

// TierBand maps an inclusive score range to a tier and its multiplicative factor.
type TierBand struct {
	Tier   RiskTier
	Min    int
	Max    int
	Factor float64
}

// Params defines all configurable parameters for the credit-limit algorithm
type Params struct {
	// BaseLimit is the configured base credit limit before the tier factor.
	BaseLimit int64

	// Adjustment ratios applied to the tier base limit
	IncreaseRatio float64
	DecreaseRatio float64

	// Mean emotional intensity thresholds (inclusive)
	PositiveIntensityCeiling float64
	NegativeIntensityFloor   float64

	// Tiers must cover [domain.MinRiskScore, domain.MaxRiskScore] without gaps.
	Tiers []TierBand
}

// DefaultTiers returns the five fixed score bands.
func DefaultTiers() []TierBand {
	return []TierBand{
		{Tier: TierVeryHighRisk, Min: 0, Max: 499, Factor: 0.5},
		{Tier: TierHighRisk, Min: 500, Max: 599, Factor: 0.8},
		{Tier: TierModerateRisk, Min: 600, Max: 699, Factor: 1.2},
		{Tier: TierLowRisk, Min: 700, Max: 799, Factor: 1.5},
		{Tier: TierVeryLowRisk, Min: 800, Max: 850, Factor: 2.0},
	}
}

// DefaultParams creates a Params instance with default ratios for the given base limit
func DefaultParams(baseLimit int64) *Params {
	return &Params{
		BaseLimit:                baseLimit,
		IncreaseRatio:            0.10,
		DecreaseRatio:            0.15,
		PositiveIntensityCeiling: 4,
		NegativeIntensityFloor:   7,
		Tiers:                    DefaultTiers(),
	}
}

// Validate checks that the parameters describe a usable configuration.
func (p *Params) Validate() error {
	if p.BaseLimit <= 0 {
		return fmt.Errorf("%w: base limit must be positive, got %d", ErrInvalidParams, p.BaseLimit)
	}
	if p.IncreaseRatio < 0 || p.IncreaseRatio > 1 {
		return fmt.Errorf("%w: increase ratio must be in [0,1], got %v", ErrInvalidParams, p.IncreaseRatio)
	}
	if p.DecreaseRatio < 0 || p.DecreaseRatio > 1 {
		return fmt.Errorf("%w: decrease ratio must be in [0,1], got %v", ErrInvalidParams, p.DecreaseRatio)
	}
	if len(p.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers configured", ErrInvalidParams)
	}

	next := domain.MinRiskScore
	for _, band := range p.Tiers {
		if band.Min != next || band.Max < band.Min {
			return fmt.Errorf("%w: tier %s does not continue at score %d", ErrInvalidParams, band.Tier, next)
		}
		if band.Factor <= 0 {
			return fmt.Errorf("%w: tier %s factor must be positive", ErrInvalidParams, band.Tier)
		}
		next = band.Max + 1
	}
	if next-1 != domain.MaxRiskScore {
		return fmt.Errorf("%w: tiers end at %d, want %d", ErrInvalidParams, next-1, domain.MaxRiskScore)
	}

	return nil
}
