// Package conll reads dependency parses in CoNLL-U format.
//
// The ten CoNLL-U columns map onto core.Token as follows:
//
//	ID     sentence position (1-based); multiword ranges and empty nodes are skipped
//	FORM   Text
//	LEMMA  Lemma
//	UPOS   Pos
//	XPOS   Tag
//	HEAD   Head (0 marks the sentence root)
//	DEPREL Dep ("root" is reported as "ROOT")
//	DEPS   Semantic: enhanced links "head:label|head:label" beyond the basic one
//	MISC   SpaceAfter=No, Ent=<entity type>, Coref=<group>, SpanHead=<ID>
//
// Tokens carrying SpanHead=<ID> form a multi-word span with the token at ID.
// Coreference groups are document-scoped. The document text is rebuilt from the
// token forms and SpaceAfter annotations, so rune offsets are exact.
package conll

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/parser"
)

const rootLabel = "ROOT"

// Parser is a parser.Parser over CoNLL-U input: the text passed to Parse is the
// CoNLL-U rendering of an upstream parse.
type Parser struct{}

var _ parser.Parser = Parser{}

// Parse implements parser.Parser.
func (Parser) Parse(ctx context.Context, text, label string) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(strings.NewReader(text), label)
}

type row struct {
	id       int
	form     string
	lemma    string
	upos     string
	xpos     string
	head     int
	deprel   string
	deps     []core.Dependency
	noSpace  bool
	ent      string
	coref    int
	spanHead int
}

// Read decodes a CoNLL-U stream into a validated document.
func Read(r io.Reader, label string) (*core.Document, error) {
	var (
		sentences [][]row
		current   []row
		lineNo    int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.TrimSpace(line) == "":
			if len(current) > 0 {
				sentences = append(sentences, current)
				current = nil
			}
		case strings.HasPrefix(line, "#"):
		default:
			rw, skip, err := parseRow(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", parser.ErrMalformedInput, lineNo, err)
			}
			if skip {
				continue
			}
			if rw.id != len(current)+1 {
				return nil, fmt.Errorf("%w: line %d: token id %d out of sequence", parser.ErrMalformedInput, lineNo, rw.id)
			}
			current = append(current, rw)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return build(sentences, label)
}

func parseRow(line string) (rw row, skip bool, err error) {
	cols := strings.Split(line, "\t")
	if len(cols) != 10 {
		cols = strings.Fields(line)
	}
	if len(cols) != 10 {
		return rw, false, fmt.Errorf("expected 10 columns, found %d", len(cols))
	}
	if strings.ContainsAny(cols[0], "-.") {
		return rw, true, nil
	}
	if rw.id, err = strconv.Atoi(cols[0]); err != nil {
		return rw, false, fmt.Errorf("bad id %q", cols[0])
	}
	rw.form = cols[1]
	rw.lemma = cols[2]
	rw.upos = cols[3]
	rw.xpos = cols[4]
	if rw.xpos == "_" {
		rw.xpos = rw.upos
	}
	if rw.head, err = strconv.Atoi(cols[6]); err != nil {
		return rw, false, fmt.Errorf("bad head %q", cols[6])
	}
	rw.deprel = cols[7]
	if strings.EqualFold(rw.deprel, "root") {
		rw.deprel = rootLabel
	}
	if cols[8] != "_" {
		for _, dep := range strings.Split(cols[8], "|") {
			h, lbl, ok := strings.Cut(dep, ":")
			if !ok {
				return rw, false, fmt.Errorf("bad enhanced dependency %q", dep)
			}
			head, err := strconv.Atoi(h)
			if err != nil {
				return rw, false, fmt.Errorf("bad enhanced dependency head %q", dep)
			}
			if head == 0 {
				continue
			}
			rw.deps = append(rw.deps, core.Dependency{Head: head, Label: lbl})
		}
	}
	if cols[9] != "_" {
		for _, item := range strings.Split(cols[9], "|") {
			key, value, _ := strings.Cut(item, "=")
			switch key {
			case "SpaceAfter":
				rw.noSpace = value == "No"
			case "Ent":
				rw.ent = value
			case "Coref":
				if rw.coref, err = strconv.Atoi(value); err != nil || rw.coref <= 0 {
					return rw, false, fmt.Errorf("bad coreference group %q", value)
				}
			case "SpanHead":
				if rw.spanHead, err = strconv.Atoi(value); err != nil {
					return rw, false, fmt.Errorf("bad span head %q", value)
				}
			}
		}
	}
	return rw, false, nil
}

func build(rows [][]row, label string) (*core.Document, error) {
	var (
		text      strings.Builder
		tokens    []core.Token
		sentences []core.Sentence
		spans     []core.Span
		offset    int
		spaced    = true
	)
	for si, sentence := range rows {
		start := len(tokens)
		if !spaced {
			text.WriteByte(' ')
			offset++
		}
		for _, rw := range sentence {
			if rw.head < 0 || rw.head > len(sentence) {
				return nil, fmt.Errorf("%w: sentence %d token %d: head %d outside sentence", parser.ErrMalformedInput, si+1, rw.id, rw.head)
			}
			index := start + rw.id - 1
			tok := core.Token{
				Index:         index,
				Sentence:      si,
				SentenceIndex: rw.id - 1,
				Text:          rw.form,
				Lemma:         rw.lemma,
				Pos:           rw.upos,
				Tag:           rw.xpos,
				Dep:           rw.deprel,
				EntType:       rw.ent,
				Idx:           offset,
				Coref:         rw.coref,
			}
			if rw.head == 0 {
				tok.Head = index
			} else {
				tok.Head = start + rw.head - 1
			}
			for _, dep := range rw.deps {
				if dep.Head > len(sentence) {
					return nil, fmt.Errorf("%w: sentence %d token %d: enhanced head %d outside sentence", parser.ErrMalformedInput, si+1, rw.id, dep.Head)
				}
				tok.Semantic = append(tok.Semantic, core.Dependency{Head: start + dep.Head - 1, Label: dep.Label})
			}
			tokens = append(tokens, tok)

			text.WriteString(rw.form)
			offset += utf8.RuneCountInString(rw.form)
			spaced = !rw.noSpace
			if spaced {
				text.WriteByte(' ')
				offset++
			}
		}
		sentences = append(sentences, core.Sentence{Start: start, End: len(tokens)})

		sentenceSpans, err := collectSpans(sentence, start)
		if err != nil {
			return nil, fmt.Errorf("%w: sentence %d: %w", parser.ErrMalformedInput, si+1, err)
		}
		spans = append(spans, sentenceSpans...)
	}

	return core.NewDocument(label, strings.TrimRight(text.String(), " "), tokens, sentences, spans)
}

func collectSpans(sentence []row, start int) ([]core.Span, error) {
	members := make(map[int][]int)
	for _, rw := range sentence {
		if rw.spanHead != 0 && rw.spanHead != rw.id {
			members[rw.spanHead] = append(members[rw.spanHead], rw.id)
		}
	}
	heads := make([]int, 0, len(members))
	for head := range members {
		heads = append(heads, head)
	}
	slices.Sort(heads)

	var spans []core.Span
	for _, head := range heads {
		ids := append(members[head], head)
		lo, hi := slices.Min(ids), slices.Max(ids)
		if hi-lo+1 != len(ids) {
			return nil, fmt.Errorf("span headed by %d is not contiguous", head)
		}
		spans = append(spans, core.Span{Start: start + lo - 1, End: start + hi, Head: start + head - 1})
	}
	return spans, nil
}
