package triage

import "NewsTriage/internal/domain"

var objectiveEmotions = map[string]struct{}{
	"neutral": {},
	"calm":    {},
}

// Refiner extracts the strictly objective articles from the featured and best buckets.
type Refiner struct {
	neutralLabel string
}

// NewRefiner uses neutralLabel (e.g. "3 stars") as the sentiment midpoint.
func NewRefiner(neutralLabel string) *Refiner {
	return &Refiner{neutralLabel: neutralLabel}
}

// Refine concatenates featured and best, removes duplicates by identity key
// and keeps the candidates passing the strict predicate. Never returns nil.
func (r *Refiner) Refine(featured, best []domain.AnalyzedArticle) []domain.AnalyzedArticle {
	candidates := make([]domain.AnalyzedArticle, 0, len(featured)+len(best))
	candidates = append(candidates, featured...)
	candidates = append(candidates, best...)

	out := []domain.AnalyzedArticle{}
	for _, a := range Dedup(candidates) {
		if r.Objective(a) {
			out = append(out, a)
		}
	}
	return out
}

// Objective is the strict-objectivity predicate.
func (r *Refiner) Objective(a domain.AnalyzedArticle) bool {
	if a.Veracity != domain.VeracityTrue || a.Category != domain.CategoryGoodObjective {
		return false
	}
	if a.Sentiment != r.neutralLabel {
		return false
	}
	_, ok := objectiveEmotions[domain.NormalizeEmotion(a.Emotion)]
	return ok
}

// Dedup keeps the first article seen for every identity key.
func Dedup(articles []domain.AnalyzedArticle) []domain.AnalyzedArticle {
	seen := make(map[string]struct{}, len(articles))
	out := make([]domain.AnalyzedArticle, 0, len(articles))
	for _, a := range articles {
		key := a.IdentityKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
