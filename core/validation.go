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


package core

import (
	"fmt"
	"unicode/utf8"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Token i carries Index i
//   - Heads and semantic governors point inside the document
//   - Sentences tile the token sequence without gaps and tokens agree with them
//   - Multi-word spans are non-empty, in range and contain their head
//   - Token offsets are non-decreasing and address the token text
//
// NOT validated (optional annotations):
//   - EntType, Coref and Vector
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if err := validateTokens(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := validateSentences(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := validateSpans(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := validateOffsets(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

func validateTokens(doc *Document) error {
	n := len(doc.Tokens)
	for i := range doc.Tokens {
		tok := &doc.Tokens[i]
		if tok.Index != i {
			return fmt.Errorf("%w: token %d carries index %d", ErrTokenIndex, i, tok.Index)
		}
		if tok.Head < 0 || tok.Head >= n {
			return fmt.Errorf("%w: token %d governed by %d", ErrHeadOutOfRange, i, tok.Head)
		}
		for _, dep := range tok.Semantic {
			if dep.Head < 0 || dep.Head >= n {
				return fmt.Errorf("%w: token %d semantically governed by %d", ErrHeadOutOfRange, i, dep.Head)
			}
		}
	}
	return nil
}

func validateSentences(doc *Document) error {
	if len(doc.Tokens) == 0 {
		if len(doc.Sentences) != 0 {
			return fmt.Errorf("%w: sentences without tokens", ErrSentenceBoundaries)
		}
		return nil
	}

	next := 0
	for si, sentence := range doc.Sentences {
		if sentence.Start != next || sentence.End <= sentence.Start {
			return fmt.Errorf("%w: sentence %d spans [%d, %d)", ErrSentenceBoundaries, si, sentence.Start, sentence.End)
		}
		for i := sentence.Start; i < sentence.End && i < len(doc.Tokens); i++ {
			tok := &doc.Tokens[i]
			if tok.Sentence != si || tok.SentenceIndex != i-sentence.Start {
				return fmt.Errorf("%w: token %d disagrees with sentence %d", ErrSentenceBoundaries, i, si)
			}
		}
		next = sentence.End
	}
	if next != len(doc.Tokens) {
		return fmt.Errorf("%w: sentences end at %d of %d tokens", ErrSentenceBoundaries, next, len(doc.Tokens))
	}
	return nil
}

func validateSpans(doc *Document) error {
	for si, span := range doc.Spans {
		if span.Start < 0 || span.End > len(doc.Tokens) || span.End-span.Start < 2 || !span.Contains(span.Head) {
			return fmt.Errorf("%w: span %d is [%d, %d) headed by %d", ErrSpanOutOfRange, si, span.Start, span.End, span.Head)
		}
		for sj := 0; sj < si; sj++ {
			other := doc.Spans[sj]
			if span.Start < other.End && other.Start < span.End {
				return fmt.Errorf("%w: spans %d and %d overlap", ErrSpanOutOfRange, sj, si)
			}
		}
	}
	return nil
}

func validateOffsets(doc *Document) error {
	runes := []rune(doc.Text)
	previous := 0
	for i := range doc.Tokens {
		tok := &doc.Tokens[i]
		end := tok.Idx + utf8.RuneCountInString(tok.Text)
		if tok.Idx < previous || end > len(runes) {
			return fmt.Errorf("%w: token %d at %d", ErrCharacterOffset, i, tok.Idx)
		}
		if string(runes[tok.Idx:end]) != tok.Text {
			return fmt.Errorf("%w: token %d text %q not found at %d", ErrCharacterOffset, i, tok.Text, tok.Idx)
		}
		previous = tok.Idx
	}
	return nil
}
