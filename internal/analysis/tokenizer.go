package analysis

import (
	"fmt"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

const minTokenRunes = 3

var wordPattern = regexp.MustCompile(`[` + wordChars + `]+`)

// Lemmatizer reduces a word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Tokenizer turns raw post text into lemmatized content words.
type Tokenizer struct {
	lemmatizer Lemmatizer
	stopWords  map[string]struct{}
}

// NewTokenizer builds a tokenizer over the given lemmatizer and stop-words.
func NewTokenizer(lemmatizer Lemmatizer, stopWords []string) *Tokenizer {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[w] = struct{}{}
	}
	return &Tokenizer{lemmatizer: lemmatizer, stopWords: set}
}

// NewDefaultTokenizer builds a tokenizer with the English dictionary
// lemmatizer and stop-word list. Loading the dictionary is slow; build it once.
func NewDefaultTokenizer() (*Tokenizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer: %w", err)
	}
	return NewTokenizer(lemmatizer, englishStopWords), nil
}

// Tokenize normalizes text and returns its lemmas in order, dropping
// stop-words and lemmas shorter than three characters. It never fails: any
// error yields an empty slice.
func (t *Tokenizer) Tokenize(text string) (tokens []string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tokenize failed", "error", r)
			tokens = []string{}
		}
	}()

	tokens = []string{}
	for _, word := range wordPattern.FindAllString(Normalize(text), -1) {
		if t.isStopWord(word) {
			continue
		}

		lemma := word
		if t.lemmatizer != nil {
			lemma = t.lemmatizer.Lemma(word)
		}

		if utf8.RuneCountInString(lemma) < minTokenRunes || t.isStopWord(lemma) {
			continue
		}
		tokens = append(tokens, lemma)
	}

	return tokens
}

func (t *Tokenizer) isStopWord(word string) bool {
	_, ok := t.stopWords[word]
	return ok
}
