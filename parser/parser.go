// Package parser defines the contract with the external linguistic parser.
//
// The matching engine never tokenizes, tags or parses text itself. A Parser turns
// raw text into a fully annotated core.Document: tokens with lemmas, coarse and
// fine tags, dependency heads and labels, semantic links, entity labels,
// coreference groups and rune offsets. Implementations must be deterministic for
// a fixed input and safe for concurrent use.
package parser

import (
	"context"
	"errors"

	"github.com/poiesic/topicmatch/core"
)

// ErrMalformedInput indicates parser output that cannot be interpreted.
var ErrMalformedInput = errors.New("malformed parser output")

// Parser produces annotated documents from text.
type Parser interface {
	// Parse annotates text and labels the resulting document.
	Parse(ctx context.Context, text, label string) (*core.Document, error)
}

// Func adapts an ordinary function to the Parser interface.
type Func func(ctx context.Context, text, label string) (*core.Document, error)

// Parse implements Parser.
func (f Func) Parse(ctx context.Context, text, label string) (*core.Document, error) {
	return f(ctx, text, label)
}
