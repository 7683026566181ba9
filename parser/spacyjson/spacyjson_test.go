package spacyjson

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visited = `{
  "tokens": [[
    {"id": 0, "head": 1, "sent": 0, "pos": "PROPN", "dep": "nsubj", "tag": "NNP", "idx": 0, "text": "Peter", "lemma": "Peter", "index": 0, "ent_type": "PERSON", "coref": 1},
    {"id": 1, "head": 1, "sent": 0, "pos": "VERB", "dep": "ROOT", "tag": "VBD", "idx": 6, "text": "visited", "lemma": "visit", "index": 1},
    {"id": 2, "head": 1, "sent": 0, "pos": "PROPN", "dep": "dobj", "tag": "NNP", "idx": 14, "text": "Paris", "lemma": "Paris", "index": 2, "ent_type": "GPE"},
    {"id": 3, "head": 1, "sent": 0, "pos": "PUNCT", "dep": "punct", "tag": ".", "idx": 19, "text": ".", "lemma": ".", "index": 3}
  ], [
    {"id": 4, "head": 5, "sent": 1, "pos": "PRON", "dep": "nsubj", "tag": "PRP", "idx": 21, "text": "He", "lemma": "he", "index": 0, "coref": 1},
    {"id": 5, "head": 5, "sent": 1, "pos": "VERB", "dep": "ROOT", "tag": "VBD", "idx": 24, "text": "left", "lemma": "leave", "index": 1}
  ]]
}`

func TestRead(t *testing.T) {
	doc, err := Read(strings.NewReader(visited), "paris")
	require.NoError(t, err)

	assert.Equal(t, "Peter visited Paris. He left", doc.Text)
	assert.Equal(t, []core.Sentence{{Start: 0, End: 4}, {Start: 4, End: 6}}, doc.Sentences)
	assert.Equal(t, "GPE", doc.Tokens[2].EntType)
	assert.Equal(t, []int{4, 0}, doc.Coreferents(4))
	assert.True(t, doc.Tokens[5].IsRoot())
}

func TestReadWithText(t *testing.T) {
	input := `{"text": "Dogs bark", "tokens": [[
		{"id": 0, "head": 1, "pos": "NOUN", "dep": "nsubj", "tag": "NNS", "idx": 0, "text": "Dogs", "lemma": "dog", "index": 0},
		{"id": 1, "head": 1, "pos": "VERB", "dep": "ROOT", "tag": "VBP", "idx": 5, "text": "bark", "lemma": "bark", "index": 1,
		 "deps": [{"head": 0, "label": "relant"}]}
	]]}`

	doc, err := Read(strings.NewReader(input), "")
	require.NoError(t, err)
	assert.Equal(t, "Dogs bark", doc.Text)
	assert.Equal(t, []core.Dependency{{Head: 0, Label: "relant"}}, doc.Tokens[1].Semantic)
}

func TestReadErrors(t *testing.T) {
	t.Run("not json", func(t *testing.T) {
		_, err := Read(strings.NewReader("tokens"), "")
		assert.ErrorIs(t, err, parser.ErrMalformedInput)
	})

	t.Run("ids out of sequence", func(t *testing.T) {
		_, err := Read(strings.NewReader(`{"tokens": [[{"id": 3, "head": 3, "text": "a", "idx": 0}]]}`), "")
		assert.ErrorIs(t, err, parser.ErrMalformedInput)
	})

	t.Run("offsets disagree with text", func(t *testing.T) {
		_, err := Read(strings.NewReader(`{"text": "xyz", "tokens": [[{"id": 0, "head": 0, "text": "a", "idx": 0}]]}`), "")
		assert.ErrorIs(t, err, core.ErrInvalidDocument)
	})
}

func TestParser(t *testing.T) {
	doc, err := Parser{}.Parse(context.Background(), visited, "label")
	require.NoError(t, err)
	assert.Equal(t, "label", doc.Label)
}
