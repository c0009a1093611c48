package triage

import "NewsTriage/internal/domain"

// Rule sends an article to Bucket when Match holds.
type Rule struct {
	Bucket domain.Bucket
	Match  func(domain.AnalyzedArticle) bool
}

var featuredEmotions = map[string]struct{}{
	"neutral": {},
	"calm":    {},
	"content": {},
}

// DefaultRules is the primary routing policy, evaluated top to bottom.
func DefaultRules() []Rule {
	return []Rule{
		{Bucket: domain.BucketFeatured, Match: isFeatured},
		{Bucket: domain.BucketBest, Match: isBest},
		{Bucket: domain.BucketWorst, Match: isWorst},
	}
}

func isFeatured(a domain.AnalyzedArticle) bool {
	if a.Category != domain.CategoryGoodObjective {
		return false
	}
	_, ok := featuredEmotions[domain.NormalizeEmotion(a.Emotion)]
	return ok
}

func isBest(a domain.AnalyzedArticle) bool {
	return a.Category == domain.CategoryGoodObjective && a.StarRating >= GoodStarThreshold
}

func isWorst(a domain.AnalyzedArticle) bool {
	return a.Category == domain.CategoryDoubtfulFalse ||
		(a.Veracity == domain.VeracityTrue && a.StarRating <= 2)
}

func isInconclusive(a domain.AnalyzedArticle) bool {
	return a.LowConfidence
}

// Router assigns each article to at most one bucket; the first matching rule wins.
type Router struct {
	rules []Rule
}

// NewRouter builds the default policy. With PolicyInconclusive, low-confidence
// articles are diverted to BucketInconclusive before any other rule runs.
func NewRouter(policy domain.LowConfidencePolicy) *Router {
	rules := DefaultRules()
	if policy == domain.PolicyInconclusive {
		rules = append([]Rule{{Bucket: domain.BucketInconclusive, Match: isInconclusive}}, rules...)
	}
	return &Router{rules: rules}
}

// NewRouterWithRules uses a custom ordered rule list.
func NewRouterWithRules(rules []Rule) *Router {
	return &Router{rules: append([]Rule(nil), rules...)}
}

// Route returns the bucket for a, or BucketNone when no rule matches.
func (r *Router) Route(a domain.AnalyzedArticle) domain.Bucket {
	for _, rule := range r.rules {
		if rule.Match(a) {
			return rule.Bucket
		}
	}
	return domain.BucketNone
}
