package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// plantDocument builds "A plant grows." by hand.
func plantDocument(t *testing.T, label string) *Document {
	t.Helper()
	tokens := []Token{
		{Index: 0, Text: "A", Lemma: "a", Pos: "DET", Tag: "DT", Dep: "det", Head: 1, Idx: 0},
		{Index: 1, SentenceIndex: 1, Text: "plant", Lemma: "plant", Pos: "NOUN", Tag: "NN", Dep: "nsubj", Head: 2, Idx: 2},
		{Index: 2, SentenceIndex: 2, Text: "grows", Lemma: "grow", Pos: "VERB", Tag: "VBZ", Dep: "ROOT", Head: 2, Idx: 8},
		{Index: 3, SentenceIndex: 3, Text: ".", Lemma: ".", Pos: "PUNCT", Tag: ".", Dep: "punct", Head: 2, Idx: 13},
	}
	doc, err := NewDocument(label, "A plant grows.", tokens, []Sentence{{Start: 0, End: 4}}, nil)
	require.NoError(t, err)
	return doc
}

// coordinationDocument builds "I saw Richard Paul Hudson. He bought a car and a van." with a
// coreference chain, a multi-word span and a coordination carrying a propagated link.
func coordinationDocument(t *testing.T) *Document {
	t.Helper()
	text := "I saw Richard Paul Hudson. He bought a car and a van."
	tokens := []Token{
		{Index: 0, Sentence: 0, SentenceIndex: 0, Text: "I", Lemma: "I", Pos: "PRON", Tag: "PRP", Dep: "nsubj", Head: 1, Idx: 0},
		{Index: 1, Sentence: 0, SentenceIndex: 1, Text: "saw", Lemma: "see", Pos: "VERB", Tag: "VBD", Dep: "ROOT", Head: 1, Idx: 2},
		{Index: 2, Sentence: 0, SentenceIndex: 2, Text: "Richard", Lemma: "Richard", Pos: "PROPN", Tag: "NNP", Dep: "compound", Head: 4, Idx: 6},
		{Index: 3, Sentence: 0, SentenceIndex: 3, Text: "Paul", Lemma: "Paul", Pos: "PROPN", Tag: "NNP", Dep: "compound", Head: 4, Idx: 14},
		{Index: 4, Sentence: 0, SentenceIndex: 4, Text: "Hudson", Lemma: "Hudson", Pos: "PROPN", Tag: "NNP", Dep: "dobj", Head: 1, EntType: "PERSON", Idx: 19, Coref: 1},
		{Index: 5, Sentence: 0, SentenceIndex: 5, Text: ".", Lemma: ".", Pos: "PUNCT", Tag: ".", Dep: "punct", Head: 1, Idx: 25},
		{Index: 6, Sentence: 1, SentenceIndex: 0, Text: "He", Lemma: "he", Pos: "PRON", Tag: "PRP", Dep: "nsubj", Head: 7, Idx: 27, Coref: 1},
		{Index: 7, Sentence: 1, SentenceIndex: 1, Text: "bought", Lemma: "buy", Pos: "VERB", Tag: "VBD", Dep: "ROOT", Head: 7, Idx: 30},
		{Index: 8, Sentence: 1, SentenceIndex: 2, Text: "a", Lemma: "a", Pos: "DET", Tag: "DT", Dep: "det", Head: 9, Idx: 37},
		{Index: 9, Sentence: 1, SentenceIndex: 3, Text: "car", Lemma: "car", Pos: "NOUN", Tag: "NN", Dep: "dobj", Head: 7, Idx: 39},
		{Index: 10, Sentence: 1, SentenceIndex: 4, Text: "and", Lemma: "and", Pos: "CCONJ", Tag: "CC", Dep: "cc", Head: 9, Idx: 43},
		{Index: 11, Sentence: 1, SentenceIndex: 5, Text: "a", Lemma: "a", Pos: "DET", Tag: "DT", Dep: "det", Head: 12, Idx: 47},
		{Index: 12, Sentence: 1, SentenceIndex: 6, Text: "van", Lemma: "van", Pos: "NOUN", Tag: "NN", Dep: "conj", Head: 9, Idx: 49,
			Semantic: []Dependency{{Head: 7, Label: "dobj"}}},
		{Index: 13, Sentence: 1, SentenceIndex: 7, Text: ".", Lemma: ".", Pos: "PUNCT", Tag: ".", Dep: "punct", Head: 7, Idx: 52},
	}
	doc, err := NewDocument("coordination", text, tokens,
		[]Sentence{{Start: 0, End: 6}, {Start: 6, End: 14}},
		[]Span{{Start: 2, End: 5, Head: 4}})
	require.NoError(t, err)
	return doc
}
