package core

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// conjunctLabel marks a coordinated token in the dependency parse.
const conjunctLabel = "conj"

// Document is a parsed, annotated text. Documents are immutable once created by
// NewDocument; the derived indexes below are computed once and only read afterwards.
type Document struct {
	Label     string     `json:"label"`
	Text      string     `json:"text"`
	Tokens    []Token    `json:"tokens"`
	Sentences []Sentence `json:"sentences"`
	Spans     []Span     `json:"spans,omitempty"`

	runes     []rune
	governors [][]Link
	children  [][]Link
	groups    map[int][]int
	spanHeads map[int]int
	spanOf    []int
	siblings  []int
}

// NewDocument validates the annotations and builds the derived indexes.
// Empty collections are stored as nil.
func NewDocument(label, text string, tokens []Token, sentences []Sentence, spans []Span) (*Document, error) {
	for i := range tokens {
		if len(tokens[i].Semantic) == 0 {
			tokens[i].Semantic = nil
		}
		if len(tokens[i].Vector) == 0 {
			tokens[i].Vector = nil
		}
	}
	if len(spans) == 0 {
		spans = nil
	}
	doc := &Document{
		Label:     label,
		Text:      text,
		Tokens:    tokens,
		Sentences: sentences,
		Spans:     spans,
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	doc.index()
	return doc, nil
}

// Record returns the persisted form of the document.
func (d *Document) Record() DocumentRecord {
	return DocumentRecord{
		Label:     d.Label,
		Text:      d.Text,
		Tokens:    d.Tokens,
		Sentences: d.Sentences,
		Spans:     d.Spans,
	}
}

// Document validates the record and rebuilds the indexes of its document.
func (r DocumentRecord) Document() (*Document, error) {
	return NewDocument(r.Label, r.Text, r.Tokens, r.Sentences, r.Spans)
}

func (d *Document) index() {
	n := len(d.Tokens)
	d.runes = []rune(d.Text)
	d.governors = make([][]Link, n)
	d.children = make([][]Link, n)
	d.groups = make(map[int][]int)
	d.spanHeads = make(map[int]int, len(d.Spans))
	d.spanOf = make([]int, n)
	d.siblings = make([]int, n)

	for i := range d.Tokens {
		tok := &d.Tokens[i]
		if !tok.IsRoot() {
			d.addLink(Link{Governor: tok.Head, Dependent: i, Label: tok.Dep})
		}
		for _, dep := range tok.Semantic {
			if dep.Head == i || (dep.Head == tok.Head && dep.Label == tok.Dep) {
				continue
			}
			d.addLink(Link{Governor: dep.Head, Dependent: i, Label: dep.Label})
		}
		if tok.Coref != 0 {
			d.groups[tok.Coref] = append(d.groups[tok.Coref], i)
		}
		d.spanOf[i] = -1
	}

	for si, span := range d.Spans {
		d.spanHeads[span.Head] = si
		for i := span.Start; i < span.End; i++ {
			d.spanOf[i] = si
		}
	}

	// Coordinated tokens share the index of the first conjunct in their chain.
	for i := range d.Tokens {
		root := i
		for d.Tokens[root].Dep == conjunctLabel && !d.Tokens[root].IsRoot() {
			root = d.Tokens[root].Head
		}
		d.siblings[i] = root
	}
}

func (d *Document) addLink(link Link) {
	for _, existing := range d.governors[link.Dependent] {
		if existing == link {
			return
		}
	}
	d.governors[link.Dependent] = append(d.governors[link.Dependent], link)
	d.children[link.Governor] = append(d.children[link.Governor], link)
}

// Len returns the number of tokens.
func (d *Document) Len() int {
	return len(d.Tokens)
}

// Governors returns the links from token i to each of its governors, syntactic first.
func (d *Document) Governors(i int) []Link {
	return d.governors[i]
}

// Children returns the links from token i to each token it governs, in token order.
func (d *Document) Children(i int) []Link {
	return d.children[i]
}

// Coreferents returns i followed by the other members of its coreference group,
// nearest first.
func (d *Document) Coreferents(i int) []int {
	group := d.groups[d.Tokens[i].Coref]
	if d.Tokens[i].Coref == 0 || len(group) < 2 {
		return []int{i}
	}
	result := make([]int, 0, len(group))
	result = append(result, i)
	for _, j := range group {
		if j != i {
			result = append(result, j)
		}
	}
	slices.SortStableFunc(result[1:], func(a, b int) int {
		return abs(a-i) - abs(b-i)
	})
	return result
}

// HeadedSpan returns the multi-word span whose head is token i.
func (d *Document) HeadedSpan(i int) (Span, bool) {
	si, ok := d.spanHeads[i]
	if !ok {
		return Span{}, false
	}
	return d.Spans[si], true
}

// EnclosingSpan returns the multi-word span containing token i.
func (d *Document) EnclosingSpan(i int) (Span, bool) {
	if d.spanOf[i] < 0 {
		return Span{}, false
	}
	return d.Spans[d.spanOf[i]], true
}

// SpanLemma joins the lowercased lemmas of the span's tokens.
func (d *Document) SpanLemma(s Span) string {
	parts := make([]string, 0, s.End-s.Start)
	for i := s.Start; i < s.End; i++ {
		parts = append(parts, strings.ToLower(d.Tokens[i].Lemma))
	}
	return strings.Join(parts, " ")
}

// Siblings returns the other tokens coordinated with token i.
func (d *Document) Siblings(i int) []int {
	var result []int
	for j, root := range d.siblings {
		if j != i && root == d.siblings[i] {
			result = append(result, j)
		}
	}
	return result
}

// AreSiblings reports whether tokens i and j are coordinated with each other.
func (d *Document) AreSiblings(i, j int) bool {
	return i != j && d.siblings[i] == d.siblings[j]
}

// SentenceOf returns the sentence containing token i.
func (d *Document) SentenceOf(i int) Sentence {
	return d.Sentences[d.Tokens[i].Sentence]
}

// TokenEnd returns the rune offset just past token i.
func (d *Document) TokenEnd(i int) int {
	return d.Tokens[i].Idx + utf8.RuneCountInString(d.Tokens[i].Text)
}

// Slice returns the document text between two rune offsets.
func (d *Document) Slice(start, end int) string {
	return string(d.runes[start:end])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
