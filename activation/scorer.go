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


package activation

import (
	"log/slog"
	"math"
	"slices"

	"github.com/poiesic/topicmatch/config"
	"github.com/poiesic/topicmatch/match"
)

// Scorer computes activation over structural matches.
type Scorer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScorer creates a Scorer using the weights of cfg. A nil cfg means config.Default().
func NewScorer(cfg *config.Config, opts ...Option) *Scorer {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Scorer{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "activation")
	return s
}

// Score returns one record per match. Documents keep the order in which they
// first appear; within a document matches are ordered by position with
// relations ahead of single words.
func (s *Scorer) Score(matches []match.StructuralMatch) []Record {
	if len(matches) == 0 {
		return nil
	}

	var (
		order  []string
		byDocs = make(map[string][]match.StructuralMatch)
	)
	for _, m := range matches {
		if _, ok := byDocs[m.DocumentLabel]; !ok {
			order = append(order, m.DocumentLabel)
		}
		byDocs[m.DocumentLabel] = append(byDocs[m.DocumentLabel], m)
	}

	records := make([]Record, 0, len(matches))
	for _, label := range order {
		records = append(records, s.scoreDocument(byDocs[label])...)
	}
	s.logger.Debug("activation scored", "documents", len(order), "records", len(records))
	return records
}

// state is the running activation of one document.
type state struct {
	value         float64
	unconstrained float64
	lastRelation  string
	lastSingle    string
	recent        []int
	capacity      int
}

func (st *state) remembers(token int) bool {
	return slices.Contains(st.recent, token)
}

func (st *state) remember(tokens []int) {
	st.recent = append(st.recent, tokens...)
	if over := len(st.recent) - st.capacity; over > 0 {
		st.recent = slices.Delete(st.recent, 0, over)
	}
}

func (st *state) scale(f float64) {
	st.value *= f
	st.unconstrained *= f
}

func (st *state) add(v float64) {
	st.value += v
	st.unconstrained += v
}

func (st *state) atLeast(v float64) {
	st.value = math.Max(st.value, v)
	st.unconstrained = math.Max(st.unconstrained, v)
}

func (s *Scorer) scoreDocument(matches []match.StructuralMatch) []Record {
	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(a, b match.StructuralMatch) int {
		if a.Index != b.Index {
			return a.Index - b.Index
		}
		return rank(a) - rank(b)
	})

	st := &state{capacity: 2 * s.cfg.OverlapMemorySize}
	records := make([]Record, 0, len(sorted))
	previous := -1
	for _, m := range sorted {
		distance := 0
		if previous >= 0 {
			distance = m.Index - previous
			st.scale(1 - math.Min(1, float64(distance)/float64(s.cfg.MaximumActivationDistance)))
		}
		previous = m.Index

		base := s.weight(m) * m.Similarity
		if m.SingleWord {
			if m.PhraseletLabel == st.lastSingle {
				st.atLeast(base)
			} else {
				st.add(base)
			}
			st.lastSingle = m.PhraseletLabel
		} else {
			if m.PhraseletLabel == st.lastRelation {
				st.atLeast(base)
			} else {
				st.add(base)
				for _, token := range m.Tokens() {
					if st.remembers(token) {
						st.scale(s.cfg.OverlappingRelationMultiplier)
					}
				}
			}
			st.remember(m.Tokens())
			st.lastRelation = m.PhraseletLabel
		}
		st.value = math.Min(st.value, s.cfg.MaximumActivationValue)

		records = append(records, Record{
			Match:         m,
			DocumentLabel: m.DocumentLabel,
			Position:      m.Index,
			Value:         st.value,
			Unconstrained: st.unconstrained,
			Distance:      distance,
		})
	}
	return records
}

// spanIdentityFactor scales the single-word score of a match covering a whole
// multi-word span, such as a full name, in both texts.
const spanIdentityFactor = 2.4

// weight is the configured score for the kind of phraselet behind m.
func (s *Scorer) weight(m match.StructuralMatch) float64 {
	switch {
	case m.SingleWord && m.AnyTag:
		return s.cfg.SingleWordAnyTagScore
	case m.SingleWord && m.Governor().Span == match.SpanIdentity:
		return s.cfg.SingleWordScore * spanIdentityFactor
	case m.SingleWord:
		return s.cfg.SingleWordScore
	case m.ReverseOnly:
		return s.cfg.ReverseOnlyRelationScore
	default:
		return s.cfg.RelationScore
	}
}

func rank(m match.StructuralMatch) int {
	if m.SingleWord {
		return 1
	}
	return 0
}
