package relevance

// Option applies a configuration option to the Vectorizer.
type Option func(*Vectorizer)

// WithMaxFeatures caps the vocabulary size. Zero or negative disables
// the cap.
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) {
		v.maxFeatures = n
	}
}

// WithStopWords replaces the default english stop-word list.
func WithStopWords(words []string) Option {
	return func(v *Vectorizer) {
		v.stopWords = toSet(words)
	}
}
