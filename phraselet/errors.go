package phraselet

import "errors"

var (
	// ErrEmptyWordPattern indicates a query token without lemma or text.
	ErrEmptyWordPattern = errors.New("empty word pattern")

	// ErrNoDocument indicates a Build call without a query document.
	ErrNoDocument = errors.New("no query document")
)
