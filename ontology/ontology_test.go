package ontology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func animals() *Graph {
	g := NewGraph()
	g.AddHyponym("animal", "cat")
	g.AddHyponym("animal", "dog")
	g.AddHyponym("cat", "kitten")
	g.AddHyponym("organism", "animal")
	g.AddSynonyms("dog", "hound")
	return g
}

func TestGraphAncestors(t *testing.T) {
	g := animals()

	assert.Equal(t, []string{"cat", "animal", "organism"}, g.Ancestors("kitten"))
	assert.Equal(t, []string{"animal", "organism"}, g.Ancestors("Hound"))
	assert.Empty(t, g.Ancestors("organism"))
	assert.Empty(t, g.Ancestors("unknown"))
}

func TestGraphIsAncestor(t *testing.T) {
	g := animals()

	assert.True(t, g.IsAncestor("cat", "animal"))
	assert.True(t, g.IsAncestor("kitten", "Organism"))
	assert.False(t, g.IsAncestor("animal", "cat"))
	assert.False(t, g.IsAncestor("cat", "dog"))
}

func TestGraphSynonyms(t *testing.T) {
	g := animals()

	assert.Equal(t, []string{"hound"}, g.Synonyms("dog"))
	assert.Equal(t, []string{"dog"}, g.Synonyms("hound"))
	assert.Empty(t, g.Synonyms("cat"))

	t.Run("merges overlapping classes", func(t *testing.T) {
		g := NewGraph()
		g.AddSynonyms("car", "automobile")
		g.AddSynonyms("motorcar", "auto")
		g.AddSynonyms("auto", "car")

		assert.ElementsMatch(t, []string{"automobile", "motorcar", "auto"}, g.Synonyms("car"))
	})
}

func TestGraphPath(t *testing.T) {
	g := animals()

	assert.Equal(t, []string{"kitten", "cat", "animal"}, g.Path("kitten", "animal"))
	assert.Equal(t, []string{"animal", "cat", "kitten"}, g.Path("animal", "kitten"))
	assert.Equal(t, []string{"dog", "hound"}, g.Path("dog", "hound"))
	assert.Equal(t, []string{"cat"}, g.Path("cat", "CAT"))
	assert.Nil(t, g.Path("cat", "dog"))
}

func TestGraphCycles(t *testing.T) {
	g := NewGraph()
	g.AddHyponym("a", "b")
	g.AddHyponym("b", "a")

	assert.Equal(t, []string{"a"}, g.Ancestors("b"))
	assert.True(t, g.IsAncestor("a", "b"))
}

func TestEmpty(t *testing.T) {
	var o Ontology = Empty{}

	assert.False(t, o.IsAncestor("cat", "animal"))
	assert.Nil(t, o.Ancestors("cat"))
	assert.Nil(t, o.Synonyms("cat"))
}

func TestReadYAML(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		g, err := ReadYAML(strings.NewReader(`
hyponyms:
  animal: [cat, dog]
  cat: [kitten]
synonyms:
  - [dog, hound]
`))
		require.NoError(t, err)

		assert.True(t, g.IsAncestor("kitten", "animal"))
		assert.Equal(t, []string{"hound"}, g.Synonyms("dog"))
		assert.Equal(t, 5, g.Len())
	})

	t.Run("empty", func(t *testing.T) {
		g, err := ReadYAML(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, g.Len())
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := ReadYAML(strings.NewReader("hypernyms:\n  cat: [animal]\n"))
		assert.ErrorIs(t, err, ErrMalformedOntology)
	})

	t.Run("single word synonym class", func(t *testing.T) {
		_, err := ReadYAML(strings.NewReader("synonyms:\n  - [dog]\n"))
		assert.ErrorIs(t, err, ErrMalformedOntology)
	})
}
