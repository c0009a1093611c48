package domain

import "strings"

// SentinelLabel marks a classifier result substituted after a failure.
const SentinelLabel = "N/A"

// NeutralSentimentLabel is the midpoint label of the 1-5 star sentiment scale.
const NeutralSentimentLabel = "3 stars"

// LabelScore is one (label, score) pair of a classifier distribution.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifierResult is the normalized output of one adapter call. Ranking is
// only filled by adapters that return a full distribution (emotion).
type ClassifierResult struct {
	Label   string
	Score   float64
	Ranking []LabelScore
}

// Sentinel reports whether the result is the failure placeholder.
func (r ClassifierResult) Sentinel() bool {
	return r.Label == SentinelLabel
}

// SentinelResult is returned by adapters instead of an error.
func SentinelResult() ClassifierResult {
	return ClassifierResult{Label: SentinelLabel, Score: 0}
}

// Veracity is the translated output of the fake-news classifier.
type Veracity string

const (
	VeracityTrue    Veracity = "true"
	VeracityFalse   Veracity = "false"
	VeracityUnknown Veracity = "unknown"
)

// Display renders the verdict for human readers.
func (v Veracity) Display() string {
	switch v {
	case VeracityTrue:
		return "True"
	case VeracityFalse:
		return "False"
	default:
		return "Unknown"
	}
}

// VeracityResult couples the verdict with the classifier confidence.
type VeracityResult struct {
	Verdict Veracity
	Score   float64
}

// Category is the composite editorial class derived from star rating and veracity.
type Category string

const (
	CategoryDoubtfulFalse        Category = "Doubtful/False"
	CategoryGoodObjective        Category = "Good/Objective"
	CategorySubjectiveButTrue    Category = "Subjective but true"
	CategoryVeracityUndetermined Category = "Veracity undetermined"
)

// Categories lists every composite category.
var Categories = []Category{
	CategoryDoubtfulFalse,
	CategoryGoodObjective,
	CategorySubjectiveButTrue,
	CategoryVeracityUndetermined,
}

// NormalizeEmotion lowercases and trims an emotion label for set membership checks.
func NormalizeEmotion(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// LowConfidencePolicy decides what happens to an article whose sentiment
// confidence falls below the configured threshold.
type LowConfidencePolicy string

const (
	// PolicyAnnotate only flags the article; categorization and routing are unchanged.
	PolicyAnnotate LowConfidencePolicy = "annotate"
	// PolicyUndetermined forces the category to CategoryVeracityUndetermined.
	PolicyUndetermined LowConfidencePolicy = "undetermined"
	// PolicyInconclusive routes the article to BucketInconclusive.
	PolicyInconclusive LowConfidencePolicy = "inconclusive"
)

// Valid reports whether p is a known policy.
func (p LowConfidencePolicy) Valid() bool {
	switch p {
	case PolicyAnnotate, PolicyUndetermined, PolicyInconclusive:
		return true
	}
	return false
}
