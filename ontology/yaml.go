package ontology

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMalformedOntology indicates an ontology file that cannot be interpreted.
var ErrMalformedOntology = errors.New("malformed ontology")

// document is the YAML layout of an ontology file:
//
//	hyponyms:
//	  animal: [cat, dog]
//	  cat: [kitten]
//	synonyms:
//	  - [dog, hound]
type document struct {
	Hyponyms map[string][]string `yaml:"hyponyms"`
	Synonyms [][]string          `yaml:"synonyms"`
}

// LoadYAML reads an ontology from a YAML file.
func LoadYAML(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ontology: %w", err)
	}
	defer f.Close()
	return ReadYAML(f)
}

// ReadYAML reads an ontology in YAML form.
func ReadYAML(r io.Reader) (*Graph, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedOntology, err)
	}

	g := NewGraph()
	for hypernym, hyponyms := range doc.Hyponyms {
		for _, hyponym := range hyponyms {
			g.AddHyponym(hypernym, hyponym)
		}
	}
	for i, class := range doc.Synonyms {
		if len(class) < 2 {
			return nil, fmt.Errorf("%w: synonym class %d has fewer than two words", ErrMalformedOntology, i)
		}
		g.AddSynonyms(class...)
	}
	return g, nil
}
