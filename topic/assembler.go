// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package topic

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/topicmatch/activation"
	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/core"
)

// modifiers are the dependency labels a span grows over without a match.
var modifiers = []string{"amod", "compound", "nummod", "poss", "advmod", "nmod", "npadvmod", "quantmod"}

// Assembler builds topic matches from activation records.
type Assembler struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler creates an Assembler. A nil cfg means config.Default().
func NewAssembler(cfg *config.Config, opts ...Option) *Assembler {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &Assembler{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "assembler")
	return a
}

// span is a topic match under construction.
type span struct {
	doc    *core.Document
	order  int
	start  int
	end    int
	score  float64
	anchor int
}

func (s *span) contains(i int) bool {
	return i >= s.start && i <= s.end
}

// Assemble turns records into ranked topic matches. Every record must name one
// of docs, whose order breaks score ties.
func (a *Assembler) Assemble(records []activation.Record, docs []*core.Document) ([]core.TopicMatch, error) {
	if len(records) == 0 {
		return nil, nil
	}
	byLabel := make(map[string]int, len(docs))
	for i, doc := range docs {
		byLabel[doc.Label] = i
	}
	for _, r := range records {
		if _, ok := byLabel[r.DocumentLabel]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, r.DocumentLabel)
		}
	}

	positioned := slices.Clone(records)
	slices.SortStableFunc(positioned, func(x, y activation.Record) int {
		return cmp.Or(
			cmp.Compare(byLabel[x.DocumentLabel], byLabel[y.DocumentLabel]),
			cmp.Compare(x.Position, y.Position),
		)
	})

	ranked := make([]int, len(positioned))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortStableFunc(ranked, func(x, y int) int {
		return cmp.Or(
			cmp.Compare(positioned[y].Value, positioned[x].Value),
			cmp.Compare(positioned[y].Unconstrained, positioned[x].Unconstrained),
		)
	})

	perDoc := make(map[string][]*span)
	var spans []*span
	for _, idx := range ranked {
		r := positioned[idx]
		existing := perDoc[r.DocumentLabel]
		if a.cfg.OnlyOneResultPerDocument && len(existing) > 0 {
			continue
		}
		if covered(existing, r.Position) {
			continue
		}
		order := byLabel[r.DocumentLabel]
		s := &span{
			doc:    docs[order],
			order:  order,
			start:  r.Position,
			end:    r.Position,
			score:  r.Value,
			anchor: r.Position,
		}
		a.alter(s, r)

		for i := idx - 1; i >= 0; i-- {
			prev := positioned[i]
			if prev.DocumentLabel != r.DocumentLabel || positioned[i+1].Value <= a.cfg.SingleWordScore {
				break
			}
			if covered(existing, prev.Position) || abs(prev.Position-s.anchor) > a.cfg.SidewaysMatchExtent {
				break
			}
			a.alter(s, prev)
		}
		for i := idx + 1; i < len(positioned); i++ {
			next := positioned[i]
			if next.DocumentLabel != r.DocumentLabel || next.Value <= a.cfg.SingleWordScore {
				break
			}
			if covered(existing, next.Position) || abs(next.Position-s.anchor) > a.cfg.SidewaysMatchExtent {
				break
			}
			a.alter(s, next)
		}
		a.extendOverModifiers(s)

		perDoc[r.DocumentLabel] = append(existing, s)
		spans = append(spans, s)
	}

	slices.SortStableFunc(spans, func(x, y *span) int {
		return cmp.Or(
			cmp.Compare(y.score, x.score),
			cmp.Compare(y.end-y.start, x.end-x.start),
			cmp.Compare(x.order, y.order),
			cmp.Compare(x.start, y.start),
		)
	})
	if n := a.cfg.NumberOfResults; n > 0 && len(spans) > n {
		spans = spans[:n]
	}

	matches := make([]core.TopicMatch, len(spans))
	for i, s := range spans {
		matches[i] = a.topicMatch(s, positioned)
	}
	Rank(matches, a.cfg.TiedResultQuotient)

	a.logger.Debug("topic matches assembled", "records", len(records), "matches", len(matches))
	return matches, nil
}

// alter widens the span to the record's position and matched tokens that lie
// strictly within the sideways extent of the anchor.
func (a *Assembler) alter(s *span, r activation.Record) {
	for _, i := range append([]int{r.Position}, r.Match.Tokens()...) {
		if abs(i-s.anchor) < a.cfg.SidewaysMatchExtent || i == s.anchor {
			s.start = min(s.start, i)
			s.end = max(s.end, i)
		}
	}
}

// extendOverModifiers grows the span over adjacent tokens that modify a token
// already inside it.
func (a *Assembler) extendOverModifiers(s *span) {
	modifies := func(i int) bool {
		if i < 0 || i >= s.doc.Len() || abs(i-s.anchor) >= a.cfg.SidewaysMatchExtent {
			return false
		}
		tok := &s.doc.Tokens[i]
		return slices.Contains(modifiers, tok.Dep) && !tok.IsRoot() && s.contains(tok.Head)
	}
	for modifies(s.start - 1) {
		s.start--
	}
	for modifies(s.end + 1) {
		s.end++
	}
}

func (a *Assembler) topicMatch(s *span, records []activation.Record) core.TopicMatch {
	doc := s.doc
	first, last := -1, -1
	for i, sentence := range doc.Sentences {
		if sentence.End > s.start && sentence.Start <= s.end {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	sentencesStart, sentencesEnd := s.start, s.end
	if first >= 0 {
		sentencesStart = doc.Sentences[first].Start
		sentencesEnd = doc.Sentences[last].End - 1
	}

	var labels []string
	for _, r := range records {
		if r.DocumentLabel == doc.Label && s.contains(r.Position) && !slices.Contains(labels, r.Match.PhraseletLabel) {
			labels = append(labels, r.Match.PhraseletLabel)
		}
	}

	return core.TopicMatch{
		DocumentLabel:       doc.Label,
		Score:               s.score,
		StartIndex:          s.start,
		EndIndex:            s.end,
		SentencesStartIndex: sentencesStart,
		SentencesEndIndex:   sentencesEnd,
		RelativeStartIndex:  s.start - sentencesStart,
		RelativeEndIndex:    s.end - sentencesStart,
		Text:                doc.Slice(doc.Tokens[sentencesStart].Idx, doc.TokenEnd(sentencesEnd)),
		Labels:              labels,
	}
}

func covered(spans []*span, i int) bool {
	for _, s := range spans {
		if s.contains(i) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
