package calculator

import "ReinvestAnalyzer/internal/model"

// MaxBreakEvenYears bounds the break-even search.
const MaxBreakEvenYears = 100

// FindBreakEven returns the first year in which postTaxValue, grown under
// newProfile, is strictly greater than currentValue grown under currentProfile.
// Year 0 is checked before any growth. Transaction fees are not applied here:
// postTaxValue is expected to be the amount actually invested.
//
// Equal values do not count as a crossover.
func FindBreakEven(currentValue float64, currentProfile model.Profile, postTaxValue float64, newProfile model.Profile) model.BreakEven {
	return findBreakEven(currentValue, currentProfile, postTaxValue, 0, newProfile)
}

// findBreakEven walks the partial-reinvestment trajectory: moved grows under
// newProfile while kept stays on currentProfile.
func findBreakEven(current float64, currentProfile model.Profile, moved, kept float64, newProfile model.Profile) model.BreakEven {
	curGrowth := currentProfile.Growth()
	newGrowth := newProfile.Growth()
	for year := 0; year <= MaxBreakEvenYears; year++ {
		if moved+kept > current {
			return model.BreakEven(year)
		}
		current *= curGrowth
		moved *= newGrowth
		kept *= curGrowth
	}
	return model.Never
}
