package domain

// RecipientExtractor derives a display recipient from an SMS body
type RecipientExtractor interface {
	Extract(body string) string
}

// ExtractionRule is one ordered pattern tried by a RecipientExtractor
type ExtractionRule interface {
	// Match returns the raw captured recipient and whether the rule applied
	Match(body string) (string, bool)
}
