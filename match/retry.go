package match

import (
	"context"
	"maps"
	"slices"
)

// retry re-matches relations above tag-checked single-word matches, letting
// the governor match by embedding. Only governors that no relation match
// reached in the first pass are tried.
func (d *documentMatcher) retry(ctx context.Context, matches []StructuralMatch) ([]StructuralMatch, error) {
	cfg := d.cfg
	if cfg.OverallSimilarityThreshold >= 1 {
		return nil, nil
	}

	counts := make(map[string]int)
	governors := make(map[int]bool)
	best := make(map[int]float64)
	for i := range matches {
		m := &matches[i]
		if m.SingleWord && !m.AnyTag {
			counts[m.PhraseletLabel]++
		}
		if !m.SingleWord {
			governors[m.Governor().Token] = true
		}
		if m.Similarity > best[m.Index] {
			best[m.Index] = m.Similarity
		}
	}

	limit := cfg.MaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries
	candidates := make(map[int]struct{})
	for i := range matches {
		m := &matches[i]
		if !m.SingleWord || m.AnyTag {
			continue
		}
		if limit >= 0 && counts[m.PhraseletLabel] > limit {
			continue
		}
		for _, t := range d.coreferents(m.Index) {
			for _, link := range d.doc.Governors(t) {
				for _, p := range d.coreferents(link.Governor) {
					if governors[p] {
						continue
					}
					if _, ok := d.language.Template(d.doc.Tokens[p].Tag, d.doc.Tokens[t].Tag, link.Label); !ok {
						continue
					}
					candidates[p] = struct{}{}
				}
			}
		}
	}

	var result []StructuralMatch
	for _, p := range slices.Sorted(maps.Keys(candidates)) {
		if best[p] >= cfg.EmbeddingBasedRetryPreexistingMatchCutoff {
			continue
		}
		for _, ph := range d.set.Relations() {
			if ph.ReverseOnly {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			found, err := d.relationAt(ctx, ph, p, true)
			if err != nil {
				return nil, err
			}
			for i := range found {
				found[i].Kind = ReverseEmbedding
			}
			result = append(result, found...)
		}
	}
	return result, nil
}
