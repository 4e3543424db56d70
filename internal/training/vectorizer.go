package training

import (
	"errors"
	"math"
	"slices"
	"sort"
	"strings"
)

var ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain no terms")

// SparseVector holds the non-zero entries of a row, indices ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

func (v SparseVector) Dot(w []float64) float64 {
	var sum float64
	for k, i := range v.Indices {
		sum += v.Values[k] * w[i]
	}
	return sum
}

func (v SparseVector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// TFIDF turns whitespace-tokenized documents into l2-normalized tf-idf rows
// over word n-grams. The vocabulary keeps the MaxFeatures most frequent terms
// (ties broken alphabetically) and is indexed alphabetically. idf is smoothed:
// ln((1+n)/(1+df)) + 1.
type TFIDF struct {
	MaxFeatures int
	MaxNGram    int

	vocab map[string]int
	idf   []float64
}

func NewTFIDF(maxFeatures, maxNGram int) *TFIDF {
	if maxNGram < 1 {
		maxNGram = 1
	}
	return &TFIDF{MaxFeatures: maxFeatures, MaxNGram: maxNGram}
}

// Features is the vocabulary size after Fit.
func (t *TFIDF) Features() int {
	return len(t.idf)
}

// Vocabulary returns the terms in index order.
func (t *TFIDF) Vocabulary() []string {
	terms := make([]string, len(t.vocab))
	for term, i := range t.vocab {
		terms[i] = term
	}
	return terms
}

func (t *TFIDF) terms(doc string) []string {
	words := strings.Fields(doc)
	out := make([]string, 0, len(words)*t.MaxNGram)
	for n := 1; n <= t.MaxNGram; n++ {
		for i := 0; i+n <= len(words); i++ {
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return out
}

func (t *TFIDF) Fit(docs []string) error {
	freq := make(map[string]int)
	df := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range t.terms(doc) {
			freq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	if len(freq) == 0 {
		return ErrEmptyVocabulary
	}

	kept := make([]string, 0, len(freq))
	for term := range freq {
		kept = append(kept, term)
	}
	sort.Strings(kept)

	if t.MaxFeatures > 0 && len(kept) > t.MaxFeatures {
		sort.SliceStable(kept, func(i, j int) bool {
			return freq[kept[i]] > freq[kept[j]]
		})
		kept = kept[:t.MaxFeatures]
		sort.Strings(kept)
	}

	n := float64(len(docs))
	t.vocab = make(map[string]int, len(kept))
	t.idf = make([]float64, len(kept))
	for i, term := range kept {
		t.vocab[term] = i
		t.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return nil
}

func (t *TFIDF) Transform(docs []string) []SparseVector {
	rows := make([]SparseVector, len(docs))

	for d, doc := range docs {
		counts := make(map[int]float64)
		for _, term := range t.terms(doc) {
			if i, ok := t.vocab[term]; ok {
				counts[i]++
			}
		}

		indices := make([]int, 0, len(counts))
		for i := range counts {
			indices = append(indices, i)
		}
		slices.Sort(indices)

		values := make([]float64, len(indices))
		var norm float64
		for k, i := range indices {
			values[k] = counts[i] * t.idf[i]
			norm += values[k] * values[k]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range values {
				values[k] /= norm
			}
		}

		rows[d] = SparseVector{Indices: indices, Values: values}
	}

	return rows
}

func (t *TFIDF) FitTransform(docs []string) ([]SparseVector, error) {
	if err := t.Fit(docs); err != nil {
		return nil, err
	}
	return t.Transform(docs), nil
}
