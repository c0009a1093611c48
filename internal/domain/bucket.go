package domain

// Bucket names a primary output partition.
type Bucket string

const (
	BucketFeatured     Bucket = "featured"
	BucketBest         Bucket = "best"
	BucketWorst        Bucket = "worst"
	BucketInconclusive Bucket = "inconclusive"
	// BucketNone means no predicate matched and the article is dropped.
	BucketNone Bucket = ""
)

// BucketSet accumulates routed articles. Membership is mutually exclusive.
type BucketSet struct {
	Featured     []AnalyzedArticle `json:"featured"`
	Best         []AnalyzedArticle `json:"best"`
	Worst        []AnalyzedArticle `json:"worst"`
	Inconclusive []AnalyzedArticle `json:"inconclusive,omitempty"`
}

// NewBucketSet returns a set whose primary sequences serialize as [] rather than null.
func NewBucketSet() BucketSet {
	return BucketSet{
		Featured: []AnalyzedArticle{},
		Best:     []AnalyzedArticle{},
		Worst:    []AnalyzedArticle{},
	}
}

// Add appends the article to the named bucket; BucketNone is ignored.
func (s *BucketSet) Add(b Bucket, article AnalyzedArticle) {
	switch b {
	case BucketFeatured:
		s.Featured = append(s.Featured, article)
	case BucketBest:
		s.Best = append(s.Best, article)
	case BucketWorst:
		s.Worst = append(s.Worst, article)
	case BucketInconclusive:
		s.Inconclusive = append(s.Inconclusive, article)
	}
}

// Each visits every bucketed article together with its bucket name.
func (s BucketSet) Each(fn func(Bucket, AnalyzedArticle)) {
	for _, a := range s.Featured {
		fn(BucketFeatured, a)
	}
	for _, a := range s.Best {
		fn(BucketBest, a)
	}
	for _, a := range s.Worst {
		fn(BucketWorst, a)
	}
	for _, a := range s.Inconclusive {
		fn(BucketInconclusive, a)
	}
}

// ObjectivePlaceholder is persisted instead of an empty objective set.
type ObjectivePlaceholder struct {
	Message string `json:"message"`
}

// NoObjectiveMessage is the placeholder text for an empty objective set.
const NoObjectiveMessage = "No article met every strict-objectivity criterion today. We keep filtering for you."
