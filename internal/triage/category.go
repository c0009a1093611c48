// Package triage holds the editorial decision rules: the composite category,
// bucket routing and the strict-objectivity refinement.
package triage

import "NewsTriage/internal/domain"

// GoodStarThreshold is the lowest star rating a true article needs to be Good/Objective.
const GoodStarThreshold = 4

// Resolve maps a star rating and veracity verdict to a composite category.
func Resolve(stars int, veracity domain.Veracity) domain.Category {
	switch veracity {
	case domain.VeracityFalse:
		return domain.CategoryDoubtfulFalse
	case domain.VeracityTrue:
		if stars >= GoodStarThreshold {
			return domain.CategoryGoodObjective
		}
		return domain.CategorySubjectiveButTrue
	default:
		return domain.CategoryVeracityUndetermined
	}
}
