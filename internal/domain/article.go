package domain

// DefaultSourceName is used when an input article carries no source name.
const DefaultSourceName = "Unknown Source"

// RawArticle is a single element of the input artifact (GNews shape).
type RawArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Image       string    `json:"image"`
	Source      RawSource `json:"source"`
}

// RawSource is the nested publisher object of a RawArticle.
type RawSource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// SourceName returns the publisher name or DefaultSourceName.
func (a RawArticle) SourceName() string {
	if a.Source.Name == "" {
		return DefaultSourceName
	}
	return a.Source.Name
}

// AnalyzedArticle is the record produced by the analyzer and moved between
// the router, the refiner and persistence. It is never mutated after creation.
type AnalyzedArticle struct {
	Title               string       `json:"title"`
	OriginalDescription string       `json:"original_description"`
	URL                 string       `json:"article_url"`
	ImageURL            string       `json:"image_url"`
	SourceName          string       `json:"source_name"`
	Sentiment           string       `json:"sentiment"`
	SentimentConfidence float64      `json:"sentiment_confidence"`
	StarRating          int          `json:"star_rating"`
	Veracity            Veracity     `json:"veracity"`
	VeracityConfidence  float64      `json:"veracity_confidence"`
	Category            Category     `json:"category"`
	Topic               string       `json:"topic"`
	TopicConfidence     float64      `json:"topic_confidence"`
	Emotion             string       `json:"emotion"`
	EmotionConfidence   float64      `json:"emotion_confidence"`
	EmotionDetails      []LabelScore `json:"emotion_details"`
	Summary             string       `json:"summary"`
	LowConfidence       bool         `json:"low_confidence,omitempty"`
}

// IdentityKey is the URL, or the title when the URL is empty.
func (a AnalyzedArticle) IdentityKey() string {
	if a.URL != "" {
		return a.URL
	}
	return a.Title
}
