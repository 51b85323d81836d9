// Package relevance scores textual similarity between a request's skill
// tags and candidate skill profiles using TF-IDF and cosine similarity.
package relevance

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// defaultMaxFeatures caps the vocabulary size, bounding the cost of a
// single matching call to O(candidates x vocabulary).
const defaultMaxFeatures = 100

// reToken extracts word tokens of two or more characters.
var reToken = regexp.MustCompile(`[a-z0-9_]{2,}`)

// Vectorizer builds a TF-IDF vector space over a small corpus and
// compares documents by cosine similarity.
type Vectorizer struct {
	maxFeatures int
	stopWords   map[string]struct{}
}

// NewVectorizer creates a vectorizer with the default vocabulary cap and
// english stop-word list.
func NewVectorizer(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		maxFeatures: defaultMaxFeatures,
		stopWords:   englishStopWords,
	}

	// Apply all options
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Similarities fits a vector space over the query plus all docs and
// returns the cosine similarity between the query and each doc, each in
// [0,1]. A doc with no vocabulary overlap scores exactly 0. When the
// combined corpus yields no usable terms at all, ErrEmptyVocabulary is
// returned and the caller is expected to fall back to degraded scoring.
func (v *Vectorizer) Similarities(query string, docs []string) ([]float64, error) {
	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, v.tokenize(query))
	for _, d := range docs {
		corpus = append(corpus, v.tokenize(d))
	}

	vocab := v.buildVocabulary(corpus)
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	idf := inverseDocumentFrequency(corpus, vocab)

	queryVec := vectorize(corpus[0], vocab, idf)

	sims := make([]float64, len(docs))
	for i, tokens := range corpus[1:] {
		sims[i] = cosine(queryVec, vectorize(tokens, vocab, idf))
	}
	return sims, nil
}

// tokenize lowercases, extracts word tokens and drops stop words.
func (v *Vectorizer) tokenize(text string) []string {
	raw := reToken.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := v.stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// buildVocabulary assigns an index to each term, keeping at most
// maxFeatures terms ordered by total corpus frequency, ties broken
// alphabetically for determinism.
func (v *Vectorizer) buildVocabulary(corpus [][]string) map[string]int {
	totals := map[string]int{}
	for _, doc := range corpus {
		for _, tok := range doc {
			totals[tok]++
		}
	}
	if len(totals) == 0 {
		return nil
	}

	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}

	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

// inverseDocumentFrequency computes smoothed IDF weights:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func inverseDocumentFrequency(corpus [][]string, vocab map[string]int) []float64 {
	df := make([]int, len(vocab))
	for _, doc := range corpus {
		seen := map[int]bool{}
		for _, tok := range doc {
			if idx, ok := vocab[tok]; ok && !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(corpus))
	idf := make([]float64, len(vocab))
	for i, f := range df {
		idf[i] = math.Log((1+n)/(1+float64(f))) + 1
	}
	return idf
}

// vectorize produces an l2-normalized TF-IDF vector for one document.
func vectorize(tokens []string, vocab map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(vocab))
	for _, tok := range tokens {
		if idx, ok := vocab[tok]; ok {
			vec[idx] += idf[idx]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// cosine returns the dot product of two l2-normalized vectors, clamped
// to [0,1] against floating point drift.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return math.Max(0, math.Min(1, dot))
}
