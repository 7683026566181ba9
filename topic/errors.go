package topic

import "errors"

// ErrUnknownDocument indicates a record or result naming a document that was
// not supplied.
var ErrUnknownDocument = errors.New("unknown document")
