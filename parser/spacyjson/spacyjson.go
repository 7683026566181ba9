// Package spacyjson reads documents exported from spaCy as JSON.
//
// The layout extends the per-sentence token arrays used by segrob exports:
//
//	{
//	  "text": "Peter visited Paris.",
//	  "tokens": [[{"id": 0, "head": 1, "sent": 0, "pos": "PROPN", "dep": "nsubj",
//	               "tag": "NNP", "idx": 0, "text": "Peter", "lemma": "Peter", "index": 0,
//	               "ent_type": "PERSON"}, ...]],
//	  "spans": [{"start": 0, "end": 2, "head": 1}]
//	}
//
// Token ids and heads are document-absolute; "index" is the position in the
// sentence. Optional token fields: "ent_type", "coref" (group id, 0 = none) and
// "deps" (additional semantic governors as [{"head": 3, "label": "pobjp"}]).
// When "text" is absent it is rebuilt from the token offsets.
package spacyjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/parser"
)

// Token is one exported spaCy token.
type Token struct {
	Id         int               `json:"id"`
	Head       int               `json:"head"`
	SentenceId int               `json:"sent"`
	Pos        string            `json:"pos"`
	Dep        string            `json:"dep"`
	Tag        string            `json:"tag"`
	Idx        int               `json:"idx"`
	Text       string            `json:"text"`
	Lemma      string            `json:"lemma"`
	Index      int               `json:"index"`
	EntType    string            `json:"ent_type,omitempty"`
	Coref      int               `json:"coref,omitempty"`
	Deps       []core.Dependency `json:"deps,omitempty"`
}

// Doc is one exported spaCy document.
type Doc struct {
	Text   string      `json:"text,omitempty"`
	Tokens [][]Token   `json:"tokens"`
	Spans  []core.Span `json:"spans,omitempty"`
}

// Parser is a parser.Parser over spaCy JSON: the text passed to Parse is the
// JSON export of an upstream parse.
type Parser struct{}

var _ parser.Parser = Parser{}

// Parse implements parser.Parser.
func (Parser) Parse(ctx context.Context, text, label string) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(strings.NewReader(text), label)
}

// Read decodes a spaCy JSON export into a validated document.
func Read(r io.Reader, label string) (*core.Document, error) {
	var doc Doc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", parser.ErrMalformedInput, err)
	}
	return Convert(&doc, label)
}

// Convert turns a decoded export into a validated document.
func Convert(doc *Doc, label string) (*core.Document, error) {
	var (
		tokens    []core.Token
		sentences []core.Sentence
	)
	for si, sentence := range doc.Tokens {
		start := len(tokens)
		for _, t := range sentence {
			if t.Id != len(tokens) {
				return nil, fmt.Errorf("%w: token id %d out of sequence", parser.ErrMalformedInput, t.Id)
			}
			tokens = append(tokens, core.Token{
				Index:         t.Id,
				Sentence:      si,
				SentenceIndex: t.Index,
				Text:          t.Text,
				Lemma:         t.Lemma,
				Pos:           t.Pos,
				Tag:           t.Tag,
				Dep:           t.Dep,
				Head:          t.Head,
				Semantic:      t.Deps,
				EntType:       t.EntType,
				Idx:           t.Idx,
				Coref:         t.Coref,
			})
		}
		sentences = append(sentences, core.Sentence{Start: start, End: len(tokens)})
	}

	text := doc.Text
	if text == "" {
		text = rebuildText(tokens)
	}
	return core.NewDocument(label, text, tokens, sentences, doc.Spans)
}

// rebuildText places every token at its offset and fills gaps with spaces.
func rebuildText(tokens []core.Token) string {
	var b strings.Builder
	pos := 0
	for _, t := range tokens {
		for ; pos < t.Idx; pos++ {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
		pos += utf8.RuneCountInString(t.Text)
	}
	return b.String()
}
