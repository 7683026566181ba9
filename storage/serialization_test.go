package storage

import (
	"context"
	"testing"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/parser/conll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hudson = "1 I       I       PRON  PRP _ 2 nsubj    _ _\n" +
	"2 saw     see     VERB  VBD _ 0 root     _ _\n" +
	"3 Richard Richard PROPN NNP _ 5 compound _ SpanHead=5\n" +
	"4 Paul    Paul    PROPN NNP _ 5 compound _ SpanHead=5\n" +
	"5 Hudson  Hudson  PROPN NNP _ 2 dobj     _ Ent=PERSON|Coref=1|SpaceAfter=No\n" +
	"6 .       .       PUNCT .   _ 2 punct    _ _\n" +
	"\n" +
	"1 He      he      PRON  PRP _ 2 nsubj    _ Coref=1\n" +
	"2 came    come    VERB  VBD _ 0 root     _ SpaceAfter=No\n" +
	"3 .       .       PUNCT .   _ 2 punct    _ _\n"

func parse(t *testing.T, rows, label string) *core.Document {
	t.Helper()
	doc, err := conll.Parser{}.Parse(context.Background(), rows, label)
	require.NoError(t, err)
	return doc
}

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	doc := parse(t, hudson, "hudson")

	decoded, err := UnmarshalDocument(MarshalDocument(doc))
	require.NoError(t, err)

	assert.Equal(t, doc.Label, decoded.Label)
	assert.Equal(t, doc.Text, decoded.Text)
	assert.Equal(t, doc.Tokens, decoded.Tokens)
	assert.Equal(t, doc.Sentences, decoded.Sentences)
	assert.Equal(t, doc.Spans, decoded.Spans)
	assert.Equal(t, core.Fingerprint(doc), core.Fingerprint(decoded))

	// derived indexes are rebuilt
	assert.Equal(t, doc.Coreferents(6), decoded.Coreferents(6))
	span, ok := decoded.HeadedSpan(4)
	require.True(t, ok)
	assert.Equal(t, "richard paul hudson", decoded.SpanLemma(span))
	assert.Equal(t, "Hudson", decoded.Slice(decoded.Tokens[4].Idx, decoded.TokenEnd(4)))
}

func TestMarshalDocumentWithVectors(t *testing.T) {
	doc := parse(t, "1 Dogs dog NOUN NNS _ 0 root _ _\n", "dogs")
	doc.Tokens[0].Vector = []float32{0.6, 0.8}

	decoded, err := UnmarshalDocument(MarshalDocument(doc))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, decoded.Tokens[0].Vector)
}

func TestUnmarshalDocument_Invalid(t *testing.T) {
	data := MarshalDocument(parse(t, hudson, "hudson"))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated data", data[:len(data)/2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalLemmaVector(t *testing.T) {
	tests := []struct {
		name   string
		vector *core.LemmaVector
	}{
		{"with vector", &core.LemmaVector{Lemma: "dog", Vector: []float32{0.1, 0.2, 0.3}}},
		{"multiword lemma", &core.LemmaVector{Lemma: "richard paul hudson", Vector: []float32{1}}},
		{"empty vector", &core.LemmaVector{Lemma: "cat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalLemmaVector(MarshalLemmaVector(tt.vector))
			require.NoError(t, err)
			assert.Equal(t, tt.vector.Lemma, decoded.Lemma)
			assert.Len(t, decoded.Vector, len(tt.vector.Vector))
			for i := range tt.vector.Vector {
				assert.Equal(t, tt.vector.Vector[i], decoded.Vector[i])
			}
		})
	}

	_, err := UnmarshalLemmaVector([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
