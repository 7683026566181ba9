package match

import (
	"context"
	"slices"
	"strings"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/embedding"
	"github.com/poiesic/topicmatch/ontology"
	"github.com/poiesic/topicmatch/phraselet"
)

// spanDependentSimilarity is the similarity of a multi-word pattern whose head
// lemma fell on a dependent of a document span.
const spanDependentSimilarity = 0.9

// wordMatcher compares phraselet words with the tokens of one document.
type wordMatcher struct {
	doc       *core.Document
	language  *phraselet.Language
	ontology  ontology.Ontology
	oracle    embedding.Oracle
	threshold float64
	coref     bool
}

// candidates returns the tokens whose lemmas may stand in for token i.
func (w *wordMatcher) candidates(i int) []int {
	if !w.coref {
		return []int{i}
	}
	return w.doc.Coreferents(i)
}

// best returns the most similar match of a word over token i and its
// coreferents. Ties go to the fuller span match, then to i itself, then to
// the nearest coreferent.
func (w *wordMatcher) best(ctx context.Context, word *phraselet.Word, i int, embed bool, wordThreshold float64) (WordMatch, bool, error) {
	var result WordMatch
	found := false
	for _, c := range w.candidates(i) {
		m, ok, err := w.matchToken(ctx, word, c, embed, wordThreshold)
		if err != nil {
			return WordMatch{}, false, err
		}
		if ok && (!found || m.Similarity > result.Similarity ||
			(m.Similarity == result.Similarity && m.Span > result.Span)) {
			result, found = m, true
		}
	}
	return result, found, nil
}

// matchToken dispatches over the match strategies for a single document token.
func (w *wordMatcher) matchToken(ctx context.Context, word *phraselet.Word, c int, embed bool, wordThreshold float64) (WordMatch, bool, error) {
	tok := &w.doc.Tokens[c]
	if len(word.Tags) > 0 && !slices.Contains(word.Tags, tok.Tag) {
		return WordMatch{}, false, nil
	}
	result := WordMatch{QueryLemma: word.Key(), Token: c}

	if word.EntityLabel != "" {
		if w.matchesEntity(word.EntityLabel, tok) {
			result.Kind, result.Similarity = Entity, 1
			return result, true, nil
		}
		return WordMatch{}, false, nil
	}

	if word.SpanLemma != "" {
		if span := w.matchSpan(word, c); span != NoSpan {
			result.Kind, result.Span = Exact, span
			result.Similarity = 1
			if span == SpanDependent {
				result.Similarity = spanDependentSimilarity
			}
			return result, true, nil
		}
	}

	lemma, text := strings.ToLower(tok.Lemma), strings.ToLower(tok.Text)
	if word.SpanLemma == "" {
		for _, l := range word.Lemmas() {
			if l == lemma || l == text {
				result.Kind, result.Similarity = Exact, 1
				return result, true, nil
			}
		}
	}

	docKey := w.documentKey(c)
	for _, l := range w.queryKeys(word) {
		if w.related(l, docKey) || (docKey != lemma && w.related(l, lemma)) {
			result.Kind, result.Similarity = Ontology, 1
			result.Path = w.path(l, docKey, lemma)
			return result, true, nil
		}
	}

	if embed && w.threshold < 1 && w.oracle != nil {
		similarity, err := w.oracle.Similarity(ctx, word.Key(), docKey)
		if err != nil {
			return WordMatch{}, false, err
		}
		if similarity >= wordThreshold {
			result.Kind, result.Similarity = Embedding, similarity
			return result, true, nil
		}
	}
	return WordMatch{}, false, nil
}

func (w *wordMatcher) matchesEntity(label string, tok *core.Token) bool {
	if label == w.language.GenericEntity {
		return w.language.IsNoun(tok)
	}
	return tok.EntType == label
}

// matchSpan compares a multi-word pattern with token c. A pronoun coreferring
// with the span head reaches this through the candidate list.
func (w *wordMatcher) matchSpan(word *phraselet.Word, c int) SpanMatch {
	if span, ok := w.doc.HeadedSpan(c); ok && w.doc.SpanLemma(span) == word.SpanLemma {
		return SpanIdentity
	}
	if strings.ToLower(w.doc.Tokens[c].Lemma) != word.Lemma {
		return NoSpan
	}
	if span, ok := w.doc.EnclosingSpan(c); ok && span.Head != c {
		return SpanDependent
	}
	return SpanHead
}

// documentKey is the lemma token c is known by: its span lemma when it heads
// a multi-word span.
func (w *wordMatcher) documentKey(c int) string {
	if span, ok := w.doc.HeadedSpan(c); ok {
		return w.doc.SpanLemma(span)
	}
	return strings.ToLower(w.doc.Tokens[c].Lemma)
}

func (w *wordMatcher) queryKeys(word *phraselet.Word) []string {
	keys := word.Lemmas()
	if word.SpanLemma != "" {
		keys = append([]string{word.SpanLemma}, keys...)
	}
	return keys
}

// related reports whether two lemmas are synonyms or one is a hypernym of the other.
func (w *wordMatcher) related(query, document string) bool {
	if query == document {
		return false
	}
	return w.ontology.IsAncestor(document, query) ||
		w.ontology.IsAncestor(query, document) ||
		slices.Contains(w.ontology.Synonyms(query), document)
}

func (w *wordMatcher) path(query, docKey, lemma string) []string {
	finder, ok := w.ontology.(ontology.PathFinder)
	if !ok {
		return []string{query, docKey}
	}
	if path := finder.Path(query, docKey); path != nil {
		return path
	}
	return finder.Path(query, lemma)
}
