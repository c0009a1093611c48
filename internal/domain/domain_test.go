package domain

import "testing"

func TestVeracityDisplay(t *testing.T) {
	t.Parallel()

	cases := map[Veracity]string{
		VeracityTrue:    "True",
		VeracityFalse:   "False",
		VeracityUnknown: "Unknown",
		"LABEL_1":       "Unknown",
	}
	for v, want := range cases {
		if got := v.Display(); got != want {
			t.Errorf("%q.Display() = %q, want %q", v, got, want)
		}
	}
}

func TestIdentityKey(t *testing.T) {
	t.Parallel()

	if got := (AnalyzedArticle{Title: "t", URL: "https://u"}).IdentityKey(); got != "https://u" {
		t.Fatalf("url must win, got %q", got)
	}
	if got := (AnalyzedArticle{Title: "t"}).IdentityKey(); got != "t" {
		t.Fatalf("title fallback expected, got %q", got)
	}
}

func TestBucketSetAddAndEach(t *testing.T) {
	t.Parallel()

	set := NewBucketSet()
	set.Add(BucketWorst, AnalyzedArticle{Title: "w"})
	set.Add(BucketFeatured, AnalyzedArticle{Title: "f"})
	set.Add(BucketNone, AnalyzedArticle{Title: "dropped"})
	set.Add(BucketInconclusive, AnalyzedArticle{Title: "i"})

	var order []string
	set.Each(func(b Bucket, a AnalyzedArticle) { order = append(order, string(b)+":"+a.Title) })

	want := []string{"featured:f", "worst:w", "inconclusive:i"}
	if len(order) != len(want) {
		t.Fatalf("unexpected visit order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visit %d = %s, want %s", i, order[i], want[i])
		}
	}
	if set.Best == nil {
		t.Fatal("empty primary buckets must be non-nil")
	}
}

func TestPolicyValid(t *testing.T) {
	t.Parallel()

	for _, p := range []LowConfidencePolicy{PolicyAnnotate, PolicyUndetermined, PolicyInconclusive} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if LowConfidencePolicy("drop").Valid() {
		t.Error("unknown policy reported valid")
	}
}
