package triage

import (
	"testing"

	"NewsTriage/internal/domain"
)

func article(stars int, v domain.Veracity, emotion string) domain.AnalyzedArticle {
	return domain.AnalyzedArticle{
		StarRating: stars,
		Veracity:   v,
		Category:   Resolve(stars, v),
		Emotion:    emotion,
	}
}

func TestRoute(t *testing.T) {
	t.Parallel()

	router := NewRouter(domain.PolicyAnnotate)
	cases := []struct {
		name string
		in   domain.AnalyzedArticle
		want domain.Bucket
	}{
		{"good and neutral", article(5, domain.VeracityTrue, "neutral"), domain.BucketFeatured},
		{"good and calm mixed case", article(4, domain.VeracityTrue, "Calm"), domain.BucketFeatured},
		{"good and content", article(4, domain.VeracityTrue, "CONTENT"), domain.BucketFeatured},
		{"good and joyful", article(5, domain.VeracityTrue, "joy"), domain.BucketBest},
		{"false article", article(5, domain.VeracityFalse, "neutral"), domain.BucketWorst},
		{"true but negative", article(2, domain.VeracityTrue, "anger"), domain.BucketWorst},
		{"true one star", article(1, domain.VeracityTrue, "neutral"), domain.BucketWorst},
		{"true unparseable rating", article(0, domain.VeracityTrue, "neutral"), domain.BucketWorst},
		{"true and middling", article(3, domain.VeracityTrue, "neutral"), domain.BucketNone},
		{"undetermined", article(5, domain.VeracityUnknown, "neutral"), domain.BucketNone},
		{"undetermined and negative", article(1, domain.VeracityUnknown, "sadness"), domain.BucketNone},
	}

	for _, tc := range cases {
		if got := router.Route(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRouteMutualExclusivity(t *testing.T) {
	t.Parallel()

	router := NewRouter(domain.PolicyAnnotate)
	verdicts := []domain.Veracity{domain.VeracityTrue, domain.VeracityFalse, domain.VeracityUnknown}
	emotions := []string{"neutral", "calm", "content", "joy", "anger", "N/A"}

	for stars := 0; stars <= 5; stars++ {
		for _, v := range verdicts {
			for _, e := range emotions {
				a := article(stars, v, e)
				matches := 0
				for _, rule := range DefaultRules() {
					if rule.Match(a) {
						matches++
					}
				}
				bucket := router.Route(a)
				if matches > 0 && bucket == domain.BucketNone {
					t.Errorf("stars=%d v=%s e=%s matched %d rules but was dropped", stars, v, e, matches)
				}

				set := domain.NewBucketSet()
				set.Add(bucket, a)
				total := len(set.Featured) + len(set.Best) + len(set.Worst)
				if total > 1 {
					t.Errorf("stars=%d v=%s e=%s landed in %d buckets", stars, v, e, total)
				}
			}
		}
	}
}

func TestRouteInconclusivePolicy(t *testing.T) {
	t.Parallel()

	a := article(5, domain.VeracityTrue, "neutral")
	a.LowConfidence = true

	if got := NewRouter(domain.PolicyInconclusive).Route(a); got != domain.BucketInconclusive {
		t.Fatalf("expected inconclusive, got %q", got)
	}
	if got := NewRouter(domain.PolicyAnnotate).Route(a); got != domain.BucketFeatured {
		t.Fatalf("annotate policy should keep routing unchanged, got %q", got)
	}
}

func TestRouterWithCustomRules(t *testing.T) {
	t.Parallel()

	router := NewRouterWithRules([]Rule{
		{Bucket: domain.BucketWorst, Match: func(domain.AnalyzedArticle) bool { return true }},
		{Bucket: domain.BucketFeatured, Match: func(domain.AnalyzedArticle) bool { return true }},
	})
	if got := router.Route(domain.AnalyzedArticle{}); got != domain.BucketWorst {
		t.Fatalf("first rule must win, got %q", got)
	}
}
