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


// Package phraselet turns a parsed query into the small patterns matched
// against documents: single words and governor/dependent relations.
package phraselet

import (
	"slices"
	"strings"

	"github.com/poiesic/topicmatch/core"
)

// Template describes one kind of relation phraselet: the query tags a governor
// and dependent must carry and the dependency labels that join them.
type Template struct {
	Name       string
	ParentTags []string
	ChildTags  []string
	Labels     []string

	// ReverseOnly templates have governors too common to anchor a search on,
	// such as prepositions. They are matched from the dependent.
	ReverseOnly bool
}

// Accepts reports whether a governor tag, dependent tag and label fit the template.
func (t *Template) Accepts(parentTag, childTag, label string) bool {
	return slices.Contains(t.ParentTags, parentTag) &&
		slices.Contains(t.ChildTags, childTag) &&
		slices.Contains(t.Labels, label)
}

// Language is the tag inventory and phraselet templates of one parser model.
type Language struct {
	Name string

	// SingleWordTags are the fine tags that yield tag-checked single-word phraselets.
	SingleWordTags []string

	// StopLemmas never yield phraselets.
	StopLemmas []string

	// ExcludedPos are coarse tags that never yield phraselets.
	ExcludedPos []string

	// NounPos are the coarse tags matched by the generic entity placeholder.
	NounPos []string

	// EntityPrefix marks entity placeholders such as ENTITYGPE.
	EntityPrefix string

	// GenericEntity is the placeholder label matching any noun.
	GenericEntity string

	Templates []Template
}

var (
	verbTags      = []string{"VB", "VBD", "VBG", "VBN", "VBP", "VBZ"}
	nounTags      = []string{"NN", "NNS", "NNP", "NNPS", "FW"}
	adjectiveTags = []string{"JJ", "JJR", "JJS"}
)

// English returns the profile for Penn Treebank tags and ClearNLP-style labels,
// as produced by the English spaCy models.
func English() *Language {
	nounsAndVerbs := slices.Concat(nounTags, verbTags)
	return &Language{
		Name:           "en",
		SingleWordTags: []string{"NN", "NNS", "NNP", "NNPS", "FW"},
		StopLemmas:     []string{"be", "have", "then", "therefore", "so"},
		ExcludedPos: []string{
			"DET", "PUNCT", "PRON", "CCONJ", "SCONJ", "PART",
			"SPACE", "SYM", "X", "INTJ", "AUX",
		},
		NounPos:       []string{"NOUN", "PROPN"},
		EntityPrefix:  "ENTITY",
		GenericEntity: "NOUN",
		Templates: []Template{
			{Name: "predicate-actor", ParentTags: verbTags, ChildTags: nounTags,
				Labels: []string{"nsubj", "csubj", "agent", "pobjb"}},
			{Name: "predicate-patient", ParentTags: verbTags, ChildTags: nounTags,
				Labels: []string{"dobj", "nsubjpass", "csubjpass", "relant"}},
			{Name: "predicate-recipient", ParentTags: verbTags, ChildTags: nounTags,
				Labels: []string{"dative", "pobjt"}},
			{Name: "word-ofword", ParentTags: nounTags, ChildTags: nounTags,
				Labels: []string{"pobjo", "poss"}},
			{Name: "noun-dependent", ParentTags: nounTags, ChildTags: nounTags,
				Labels: []string{"compound"}},
			{Name: "governor-adjective", ParentTags: nounsAndVerbs, ChildTags: adjectiveTags,
				Labels: []string{"amod", "acomp", "advmod"}},
			{Name: "number-noun", ParentTags: nounTags, ChildTags: []string{"CD"},
				Labels: []string{"nummod"}},
			{Name: "prepgovernor-noun", ParentTags: nounsAndVerbs, ChildTags: nounTags,
				Labels: []string{"pobjp"}},
			{Name: "prep-noun", ParentTags: []string{"IN"}, ChildTags: nounTags,
				Labels: []string{"pobj"}, ReverseOnly: true},
		},
	}
}

// IsStopWord reports whether the token can never yield a phraselet.
func (l *Language) IsStopWord(tok *core.Token) bool {
	if l.EntityLabel(tok) != "" {
		return false
	}
	return slices.Contains(l.StopLemmas, strings.ToLower(tok.Lemma)) ||
		slices.Contains(l.ExcludedPos, tok.Pos)
}

// IsSingleWordTag reports whether a fine tag yields tag-checked single words.
func (l *Language) IsSingleWordTag(tag string) bool {
	return slices.Contains(l.SingleWordTags, tag)
}

// IsNoun reports whether the token matches the generic entity placeholder.
func (l *Language) IsNoun(tok *core.Token) bool {
	return slices.Contains(l.NounPos, tok.Pos)
}

// EntityLabel returns the entity type named by a placeholder token such as
// ENTITYGPE, or "" for ordinary tokens.
func (l *Language) EntityLabel(tok *core.Token) string {
	for _, s := range []string{tok.Text, tok.Lemma} {
		if len(s) > len(l.EntityPrefix) && strings.HasPrefix(s, l.EntityPrefix) &&
			s == strings.ToUpper(s) {
			return s[len(l.EntityPrefix):]
		}
	}
	return ""
}

// Template returns the first template accepting the link, if any.
func (l *Language) Template(parentTag, childTag, label string) (*Template, bool) {
	for i := range l.Templates {
		if l.Templates[i].Accepts(parentTag, childTag, label) {
			return &l.Templates[i], true
		}
	}
	return nil, false
}
