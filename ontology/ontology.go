// Package ontology provides hypernym and synonym lookups for word matching.
package ontology

import (
	"slices"
	"strings"
)

// Ontology answers hypernym and synonym questions about lemmas.
type Ontology interface {
	// IsAncestor reports whether candidate is a hypernym of word at any depth.
	IsAncestor(word, candidate string) bool

	// Ancestors returns every hypernym of word, nearest first.
	Ancestors(word string) []string

	// Synonyms returns the other members of word's synonym class.
	Synonyms(word string) []string
}

// PathFinder is implemented by ontologies that can explain a relationship.
type PathFinder interface {
	// Path returns the chain of words leading from one word to another,
	// both ends included, or nil when they are unrelated.
	Path(from, to string) []string
}

// Empty is an Ontology without entries.
type Empty struct{}

func (Empty) IsAncestor(string, string) bool { return false }
func (Empty) Ancestors(string) []string      { return nil }
func (Empty) Synonyms(string) []string       { return nil }

// Graph is an in-memory Ontology. Words are compared case-insensitively.
// A Graph is safe for concurrent reads once built.
type Graph struct {
	parents  map[string][]string
	synonyms map[string]int
	classes  [][]string
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		parents:  make(map[string][]string),
		synonyms: make(map[string]int),
	}
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// AddHyponym records that hyponym is a kind of hypernym.
func (g *Graph) AddHyponym(hypernym, hyponym string) {
	hypernym, hyponym = normalize(hypernym), normalize(hyponym)
	if hypernym == "" || hyponym == "" || hypernym == hyponym {
		return
	}
	if slices.Contains(g.parents[hyponym], hypernym) {
		return
	}
	g.parents[hyponym] = append(g.parents[hyponym], hypernym)
}

// AddSynonyms records that every word in words shares one meaning. Classes that
// share a word are merged.
func (g *Graph) AddSynonyms(words ...string) {
	target := -1
	for _, w := range words {
		if class, ok := g.synonyms[normalize(w)]; ok {
			target = class
			break
		}
	}
	if target < 0 {
		target = len(g.classes)
		g.classes = append(g.classes, nil)
	}
	for _, w := range words {
		w = normalize(w)
		if w == "" {
			continue
		}
		if class, ok := g.synonyms[w]; ok && class != target {
			for _, member := range g.classes[class] {
				g.synonyms[member] = target
				g.classes[target] = append(g.classes[target], member)
			}
			g.classes[class] = nil
			continue
		}
		if _, ok := g.synonyms[w]; !ok {
			g.synonyms[w] = target
			g.classes[target] = append(g.classes[target], w)
		}
	}
}

// equivalents returns word followed by its synonyms.
func (g *Graph) equivalents(word string) []string {
	class, ok := g.synonyms[word]
	if !ok {
		return []string{word}
	}
	result := []string{word}
	for _, member := range g.classes[class] {
		if member != word {
			result = append(result, member)
		}
	}
	return result
}

// Synonyms implements Ontology.
func (g *Graph) Synonyms(word string) []string {
	return g.equivalents(normalize(word))[1:]
}

// Ancestors implements Ontology. Hypernyms of synonyms are included.
func (g *Graph) Ancestors(word string) []string {
	word = normalize(word)
	seen := map[string]bool{}
	for _, eq := range g.equivalents(word) {
		seen[eq] = true
	}
	var result []string
	queue := slices.Clone(g.equivalents(word))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, parent := range g.parents[current] {
			for _, eq := range g.equivalents(parent) {
				if seen[eq] {
					continue
				}
				seen[eq] = true
				result = append(result, eq)
				queue = append(queue, eq)
			}
		}
	}
	return result
}

// IsAncestor implements Ontology.
func (g *Graph) IsAncestor(word, candidate string) bool {
	return slices.Contains(g.Ancestors(word), normalize(candidate))
}

// Path implements PathFinder. It walks hypernym links in either direction.
func (g *Graph) Path(from, to string) []string {
	from, to = normalize(from), normalize(to)
	if from == to {
		return []string{from}
	}
	if slices.Contains(g.equivalents(from), to) {
		return []string{from, to}
	}
	if path := g.upwardPath(from, to); path != nil {
		return path
	}
	if path := g.upwardPath(to, from); path != nil {
		slices.Reverse(path)
		return path
	}
	return nil
}

// upwardPath finds the shortest hypernym chain from word up to ancestor.
func (g *Graph) upwardPath(word, ancestor string) []string {
	previous := map[string]string{word: ""}
	queue := []string{word}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == ancestor {
			var path []string
			for w := current; w != ""; w = previous[w] {
				path = append(path, w)
			}
			slices.Reverse(path)
			return path
		}
		next := slices.Clone(g.parents[current])
		next = append(next, g.equivalents(current)[1:]...)
		for _, n := range next {
			if _, ok := previous[n]; ok {
				continue
			}
			previous[n] = current
			queue = append(queue, n)
		}
	}
	return nil
}

// Len returns the number of words known to the graph.
func (g *Graph) Len() int {
	words := make(map[string]struct{})
	for child, parents := range g.parents {
		words[child] = struct{}{}
		for _, p := range parents {
			words[p] = struct{}{}
		}
	}
	for w := range g.synonyms {
		words[w] = struct{}{}
	}
	return len(words)
}
