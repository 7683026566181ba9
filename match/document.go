package match

import (
	"context"
	"maps"
	"math"
	"slices"

	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/phraselet"
)

// documentMatcher matches a phraselet set against one document.
type documentMatcher struct {
	doc      *core.Document
	set      *phraselet.Set
	cfg      *config.Config
	language *phraselet.Language
	words    *wordMatcher
}

func (d *documentMatcher) coreferents(i int) []int {
	return d.words.candidates(i)
}

func (d *documentMatcher) match(ctx context.Context) ([]StructuralMatch, error) {
	var matches []StructuralMatch
	for _, p := range d.set.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			found []StructuralMatch
			err   error
		)
		switch {
		case p.IsSingleWord():
			found, err = d.singleWord(ctx, p)
		case p.ReverseOnly:
			found, err = d.reverse(ctx, p)
		default:
			found, err = d.forward(ctx, p)
		}
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}

	retried, err := d.retry(ctx, matches)
	if err != nil {
		return nil, err
	}
	matches = append(matches, retried...)
	matches = filterSuperfluous(d.doc, matches, d.coreferents)

	slices.SortStableFunc(matches, func(a, b StructuralMatch) int {
		if a.Index != b.Index {
			return a.Index - b.Index
		}
		return a.order - b.order
	})
	return matches, nil
}

func (d *documentMatcher) singleWord(ctx context.Context, p *phraselet.Phraselet) ([]StructuralMatch, error) {
	var result []StructuralMatch
	embed := d.cfg.EmbeddingBasedMatchingOnRootWords
	for i := range d.doc.Tokens {
		w, ok, err := d.words.best(ctx, &p.Governor, i, embed, d.cfg.OverallSimilarityThreshold)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		result = append(result, StructuralMatch{
			PhraseletLabel: p.Label,
			DocumentLabel:  d.doc.Label,
			Index:          i,
			Words:          []WordMatch{w},
			Kind:           w.Kind,
			Similarity:     w.Similarity,
			SingleWord:     true,
			AnyTag:         p.AnyTag,
			order:          d.set.Position(p.Label),
		})
	}
	return result, nil
}

// forward anchors a relation at every document token in turn.
func (d *documentMatcher) forward(ctx context.Context, p *phraselet.Phraselet) ([]StructuralMatch, error) {
	var result []StructuralMatch
	for g := range d.doc.Tokens {
		found, err := d.relationAt(ctx, p, g, d.cfg.EmbeddingBasedMatchingOnRootWords)
		if err != nil {
			return nil, err
		}
		result = append(result, found...)
	}
	return result, nil
}

// reverse anchors a relation at tokens matching its dependent and walks up to
// the governors they hang from.
func (d *documentMatcher) reverse(ctx context.Context, p *phraselet.Phraselet) ([]StructuralMatch, error) {
	wordThreshold := math.Pow(d.cfg.OverallSimilarityThreshold, 2)
	governors := make(map[int]struct{})
	for c := range d.doc.Tokens {
		_, ok, err := d.words.best(ctx, &p.Dependent, c, true, wordThreshold)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, link := range d.doc.Governors(c) {
			if !p.AcceptsLabel(link.Label) {
				continue
			}
			for _, g := range d.coreferents(link.Governor) {
				governors[g] = struct{}{}
			}
		}
	}

	var result []StructuralMatch
	for _, g := range slices.Sorted(maps.Keys(governors)) {
		found, err := d.relationAt(ctx, p, g, d.cfg.EmbeddingBasedMatchingOnRootWords)
		if err != nil {
			return nil, err
		}
		result = append(result, found...)
	}
	return result, nil
}

// relationAt matches a relation phraselet with its governor at token g. The
// dependent may hang from g or from any coreferent of g. Each dependent token
// yields at most one match, the most similar.
func (d *documentMatcher) relationAt(ctx context.Context, p *phraselet.Phraselet, g int, rootEmbed bool) ([]StructuralMatch, error) {
	threshold := d.cfg.OverallSimilarityThreshold
	wordThreshold := math.Pow(threshold, float64(p.WordCount()))

	gov, ok, err := d.words.best(ctx, &p.Governor, g, rootEmbed, wordThreshold)
	if err != nil || !ok {
		return nil, err
	}

	var result []StructuralMatch
	byDependent := make(map[int]int)
	for _, s := range d.coreferents(g) {
		for _, link := range d.doc.Children(s) {
			if !p.AcceptsLabel(link.Label) {
				continue
			}
			dep, ok, err := d.words.best(ctx, &p.Dependent, link.Dependent, true, wordThreshold)
			if err != nil {
				return nil, err
			}
			if !ok || dep.Token == gov.Token {
				continue
			}
			similarity := math.Sqrt(gov.Similarity * dep.Similarity)
			if (gov.Kind == Embedding || dep.Kind == Embedding) && similarity < threshold {
				continue
			}
			m := StructuralMatch{
				PhraseletLabel:  p.Label,
				DocumentLabel:   d.doc.Label,
				Index:           g,
				Words:           []WordMatch{gov, dep},
				Kind:            maxKind(gov.Kind, dep.Kind),
				Similarity:      similarity,
				ReverseOnly:     p.ReverseOnly,
				DependencyLabel: link.Label,
				order:           d.set.Position(p.Label),
			}
			if j, seen := byDependent[dep.Token]; seen {
				if similarity > result[j].Similarity {
					result[j] = m
				}
				continue
			}
			byDependent[dep.Token] = len(result)
			result = append(result, m)
		}
	}
	return result, nil
}
