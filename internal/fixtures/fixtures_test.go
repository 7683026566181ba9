package fixtures

import (
	"context"
	"testing"

	"github.com/poiesic/topicmatch/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryFixtureRebuildsItsText(t *testing.T) {
	for _, text := range Texts() {
		t.Run(text, func(t *testing.T) {
			doc := Document(text, "fixture")
			assert.Equal(t, text, doc.Text)
			assert.NotEmpty(t, doc.Sentences)
		})
	}
}

func TestUnknownText(t *testing.T) {
	_, err := Parser().Parse(context.Background(), "no such fixture", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrMalformedInput)
}

func TestAnimals(t *testing.T) {
	g := Animals()
	assert.True(t, g.IsAncestor("cat", "animal"))
	assert.True(t, g.IsAncestor("hound", "animal"))
	assert.Equal(t, []string{"hound"}, g.Synonyms("dog"))
}
