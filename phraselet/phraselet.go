package phraselet

import (
	"slices"
	"strings"
)

// SingleWordTemplate is the template name of single-word phraselets.
const SingleWordTemplate = "word"

// Word is the pattern one query word contributes to a phraselet.
type Word struct {
	// Lemma is the lowercased lemma. Entity placeholders keep their case.
	Lemma string

	// Alternatives are hypernym ancestors that match in place of Lemma.
	Alternatives []string

	// SpanLemma is the lemma of the multi-word span headed by the word.
	SpanLemma string

	// EntityLabel is set for entity placeholders such as ENTITYGPE.
	EntityLabel string

	// Tags restricts the fine tags of matching document tokens. Empty means any tag.
	Tags []string
}

// Lemmas returns Lemma followed by its alternatives.
func (w *Word) Lemmas() []string {
	return append([]string{w.Lemma}, w.Alternatives...)
}

// Key returns the lemma the word is known by: the span lemma for multi-word
// spans, the lemma otherwise.
func (w *Word) Key() string {
	if w.SpanLemma != "" {
		return w.SpanLemma
	}
	return w.Lemma
}

func (w *Word) label() string {
	if len(w.Alternatives) == 0 {
		return w.Key()
	}
	return strings.Join(append([]string{w.Key()}, w.Alternatives...), "|")
}

// Phraselet is a single-word or relation pattern derived from a query.
type Phraselet struct {
	Label    string
	Template string

	// Governor is the only word of a single-word phraselet.
	Governor  Word
	Dependent Word

	// DependencyLabels are the document labels a relation may match through.
	DependencyLabels []string

	// AnyTag single words match regardless of the document token's tag.
	AnyTag bool

	ReverseOnly bool

	// QueryIndex is the query token the governor came from.
	QueryIndex int
}

// IsSingleWord reports whether the phraselet is a single-word pattern.
func (p *Phraselet) IsSingleWord() bool {
	return p.Template == SingleWordTemplate
}

// AcceptsLabel reports whether a document dependency label can join the words
// of a relation phraselet.
func (p *Phraselet) AcceptsLabel(label string) bool {
	return slices.Contains(p.DependencyLabels, label)
}

// WordCount returns the number of words in the phraselet.
func (p *Phraselet) WordCount() int {
	if p.IsSingleWord() {
		return 1
	}
	return 2
}

func singleWordLabel(w *Word) string {
	return SingleWordTemplate + ": " + w.label()
}

func relationLabel(template string, governor, dependent *Word) string {
	return template + ": " + governor.label() + "-" + dependent.label()
}

// Set is an insertion-ordered collection of phraselets keyed by label.
type Set struct {
	order   []*Phraselet
	byLabel map[string]int
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{byLabel: make(map[string]int)}
}

// Add inserts a phraselet unless one with the same label exists. A tag-checked
// single word replaces an any-tag single word with the same label in place.
// Add reports whether the set changed.
func (s *Set) Add(p *Phraselet) bool {
	if i, ok := s.byLabel[p.Label]; ok {
		existing := s.order[i]
		if existing.IsSingleWord() && existing.AnyTag && p.IsSingleWord() && !p.AnyTag {
			s.order[i] = p
			return true
		}
		return false
	}
	s.byLabel[p.Label] = len(s.order)
	s.order = append(s.order, p)
	return true
}

// Get returns the phraselet with the given label.
func (s *Set) Get(label string) (*Phraselet, bool) {
	i, ok := s.byLabel[label]
	if !ok {
		return nil, false
	}
	return s.order[i], true
}

// Position returns the insertion position of a label, or -1.
func (s *Set) Position(label string) int {
	if i, ok := s.byLabel[label]; ok {
		return i
	}
	return -1
}

// Len returns the number of phraselets.
func (s *Set) Len() int {
	return len(s.order)
}

// All returns the phraselets in insertion order.
func (s *Set) All() []*Phraselet {
	return slices.Clone(s.order)
}

// Labels returns the labels in insertion order.
func (s *Set) Labels() []string {
	labels := make([]string, len(s.order))
	for i, p := range s.order {
		labels[i] = p.Label
	}
	return labels
}

// SingleWords returns the single-word phraselets in insertion order.
func (s *Set) SingleWords() []*Phraselet {
	var result []*Phraselet
	for _, p := range s.order {
		if p.IsSingleWord() {
			result = append(result, p)
		}
	}
	return result
}

// Relations returns the relation phraselets in insertion order.
func (s *Set) Relations() []*Phraselet {
	var result []*Phraselet
	for _, p := range s.order {
		if !p.IsSingleWord() {
			result = append(result, p)
		}
	}
	return result
}
