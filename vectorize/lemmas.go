package vectorize

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/phraselet"
	"github.com/poiesic/topicmatch/storage"
)

// CollectLemmas returns the distinct lowercased lemmas of every stored
// document that can take part in a match, sorted. Multi-word spans contribute
// their joined span lemma as well as the lemmas of their tokens.
func CollectLemmas(ctx context.Context, docs storage.DocumentRepository, lang *phraselet.Language) ([]string, error) {
	seen := make(map[string]struct{})
	err := docs.ForEachDocument(ctx, func(doc *core.Document) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, lemma := range DocumentLemmas(doc, lang) {
			seen[lemma] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect lemmas: %w", err)
	}

	lemmas := make([]string, 0, len(seen))
	for lemma := range seen {
		lemmas = append(lemmas, lemma)
	}
	slices.Sort(lemmas)
	return lemmas, nil
}

// DocumentLemmas returns the lemmas of one document in token order, with duplicates.
func DocumentLemmas(doc *core.Document, lang *phraselet.Language) []string {
	var lemmas []string
	for i := range doc.Tokens {
		tok := &doc.Tokens[i]
		if lang.IsStopWord(tok) {
			continue
		}
		if lemma := strings.ToLower(tok.Lemma); lemma != "" {
			lemmas = append(lemmas, lemma)
		}
		if span, ok := doc.HeadedSpan(i); ok {
			lemmas = append(lemmas, doc.SpanLemma(span))
		}
	}
	return lemmas
}
