package phraselet

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/ontology"
)

// Options controls which phraselets Build derives.
type Options struct {
	// ReplaceWithHypernymAncestors lets each word also match its ontology ancestors.
	ReplaceWithHypernymAncestors bool

	// MatchAllWords derives any-tag single words from words whose tag does not
	// yield a tag-checked single word.
	MatchAllWords bool

	// IgnoreRelationPhraselets derives single words only.
	IgnoreRelationPhraselets bool

	// IncludeReverseOnly keeps relations from reverse-only templates.
	IncludeReverseOnly bool
}

// TopicMatchingOptions are the options used for topic matching queries.
func TopicMatchingOptions() Options {
	return Options{MatchAllWords: true, IncludeReverseOnly: true}
}

// Builder derives phraselet sets from parsed queries.
// A Builder is safe for concurrent use.
type Builder struct {
	language *Language
	ontology ontology.Ontology
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLanguage sets the language profile. Default is English().
func WithLanguage(language *Language) Option {
	return func(b *Builder) { b.language = language }
}

// WithOntology sets the ontology used for hypernym replacement.
func WithOntology(o ontology.Ontology) Option {
	return func(b *Builder) { b.ontology = o }
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		language: English(),
		ontology: ontology.Empty{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.ontology == nil {
		b.ontology = ontology.Empty{}
	}
	b.logger = b.logger.With("component", "phraselet-builder")
	return b
}

// Language returns the builder's language profile.
func (b *Builder) Language() *Language {
	return b.language
}

// Build derives the phraselets of a parsed query. Each token yields at most one
// single-word phraselet, followed by the relations it governs.
func (b *Builder) Build(doc *core.Document, opts Options) (*Set, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	set := NewSet()
	for i := range doc.Tokens {
		if !b.eligible(doc, i) {
			continue
		}
		if err := b.addSingleWord(set, doc, i, opts); err != nil {
			return nil, err
		}
		if opts.IgnoreRelationPhraselets {
			continue
		}
		for _, link := range doc.Children(i) {
			if err := b.addRelation(set, doc, link, opts); err != nil {
				return nil, err
			}
		}
	}
	b.logger.Debug("built phraselets", "query", doc.Label, "phraselets", set.Len())
	return set, nil
}

// eligible reports whether token i may take part in phraselets at all.
func (b *Builder) eligible(doc *core.Document, i int) bool {
	if b.language.IsStopWord(&doc.Tokens[i]) {
		return false
	}
	// Span dependents are folded into the span head.
	if span, ok := doc.EnclosingSpan(i); ok && span.Head != i {
		return false
	}
	return true
}

func (b *Builder) addSingleWord(set *Set, doc *core.Document, i int, opts Options) error {
	tok := &doc.Tokens[i]
	if b.language.EntityLabel(tok) == b.language.GenericEntity {
		return nil
	}
	tagged := b.language.IsSingleWordTag(tok.Tag)
	if !tagged && !opts.MatchAllWords {
		return nil
	}
	w, err := b.word(doc, i, opts)
	if err != nil {
		return err
	}
	if tagged {
		w.Tags = b.language.SingleWordTags
	}
	set.Add(&Phraselet{
		Label:      singleWordLabel(&w),
		Template:   SingleWordTemplate,
		Governor:   w,
		AnyTag:     !tagged,
		QueryIndex: i,
	})
	return nil
}

func (b *Builder) addRelation(set *Set, doc *core.Document, link core.Link, opts Options) error {
	if !b.eligible(doc, link.Dependent) || link.Dependent == link.Governor {
		return nil
	}
	gov, dep := &doc.Tokens[link.Governor], &doc.Tokens[link.Dependent]
	tmpl, ok := b.language.Template(gov.Tag, dep.Tag, link.Label)
	if !ok {
		return nil
	}
	if tmpl.ReverseOnly && !opts.IncludeReverseOnly {
		return nil
	}
	governor, err := b.word(doc, link.Governor, opts)
	if err != nil {
		return err
	}
	dependent, err := b.word(doc, link.Dependent, opts)
	if err != nil {
		return err
	}
	set.Add(&Phraselet{
		Label:            relationLabel(tmpl.Name, &governor, &dependent),
		Template:         tmpl.Name,
		Governor:         governor,
		Dependent:        dependent,
		DependencyLabels: tmpl.Labels,
		ReverseOnly:      tmpl.ReverseOnly,
		QueryIndex:       link.Governor,
	})
	return nil
}

// word builds the pattern of query token i.
func (b *Builder) word(doc *core.Document, i int, opts Options) (Word, error) {
	tok := &doc.Tokens[i]
	if label := b.language.EntityLabel(tok); label != "" {
		return Word{Lemma: b.language.EntityPrefix + label, EntityLabel: label}, nil
	}

	lemma := strings.TrimSpace(tok.Lemma)
	if lemma == "" {
		lemma = strings.TrimSpace(tok.Text)
	}
	if lemma == "" {
		return Word{}, fmt.Errorf("%w: token %d of %q", ErrEmptyWordPattern, i, doc.Label)
	}

	w := Word{Lemma: strings.ToLower(lemma)}
	if span, ok := doc.HeadedSpan(i); ok && span.End-span.Start > 1 {
		w.SpanLemma = doc.SpanLemma(span)
	}
	if opts.ReplaceWithHypernymAncestors {
		w.Alternatives = b.ontology.Ancestors(w.Key())
	}
	return w, nil
}
