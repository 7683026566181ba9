package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Links(t *testing.T) {
	doc := coordinationDocument(t)

	t.Run("syntactic governor comes first", func(t *testing.T) {
		govs := doc.Governors(12)
		require.Len(t, govs, 2)
		assert.Equal(t, Link{Governor: 9, Dependent: 12, Label: "conj"}, govs[0])
		assert.Equal(t, Link{Governor: 7, Dependent: 12, Label: "dobj"}, govs[1])
	})

	t.Run("children include semantic links", func(t *testing.T) {
		var dependents []int
		for _, link := range doc.Children(7) {
			dependents = append(dependents, link.Dependent)
		}
		assert.Equal(t, []int{6, 9, 12, 13}, dependents)
	})

	t.Run("roots have no governors", func(t *testing.T) {
		assert.Empty(t, doc.Governors(1))
		assert.Empty(t, doc.Governors(7))
	})
}

func TestDocument_Coreferents(t *testing.T) {
	doc := coordinationDocument(t)

	assert.Equal(t, []int{6, 4}, doc.Coreferents(6))
	assert.Equal(t, []int{4, 6}, doc.Coreferents(4))
	assert.Equal(t, []int{9}, doc.Coreferents(9))
}

func TestDocument_Spans(t *testing.T) {
	doc := coordinationDocument(t)

	span, ok := doc.HeadedSpan(4)
	require.True(t, ok)
	assert.Equal(t, "richard paul hudson", doc.SpanLemma(span))

	_, ok = doc.HeadedSpan(3)
	assert.False(t, ok)

	enclosing, ok := doc.EnclosingSpan(3)
	require.True(t, ok)
	assert.Equal(t, span, enclosing)

	_, ok = doc.EnclosingSpan(9)
	assert.False(t, ok)
}

func TestDocument_Siblings(t *testing.T) {
	doc := coordinationDocument(t)

	assert.Equal(t, []int{12}, doc.Siblings(9))
	assert.Equal(t, []int{9}, doc.Siblings(12))
	assert.True(t, doc.AreSiblings(9, 12))
	assert.False(t, doc.AreSiblings(9, 9))
	assert.False(t, doc.AreSiblings(4, 9))
}

func TestDocument_Offsets(t *testing.T) {
	doc := coordinationDocument(t)

	assert.Equal(t, Sentence{Start: 6, End: 14}, doc.SentenceOf(9))
	assert.Equal(t, 42, doc.TokenEnd(9))
	assert.Equal(t, "He bought a car and a van.", doc.Slice(doc.Tokens[6].Idx, doc.TokenEnd(13)))
}
