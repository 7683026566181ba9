package topicmatch

import "errors"

var (
	// ErrClosed is returned by a Manager after Close.
	ErrClosed = errors.New("manager closed")

	// ErrDocumentNotFound is returned when removing a label that is not registered.
	ErrDocumentNotFound = errors.New("document not registered")

	// ErrNoDocumentRepository is returned by LoadDocuments on a manager without storage.
	ErrNoDocumentRepository = errors.New("no document repository configured")
)
