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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrDuplicateDocument indicates a document label is already registered.
	ErrDuplicateDocument = errors.New("document label already registered")

	// ErrTokenIndex indicates a token index is out of sequence.
	ErrTokenIndex = errors.New("token index out of sequence")

	// ErrHeadOutOfRange indicates a governor index outside the document.
	ErrHeadOutOfRange = errors.New("governor index out of range")

	// ErrSentenceBoundaries indicates sentences that do not tile the token sequence.
	ErrSentenceBoundaries = errors.New("sentence boundaries do not cover the tokens")

	// ErrSpanOutOfRange indicates a multi-word span that is empty, out of range
	// or headed outside itself.
	ErrSpanOutOfRange = errors.New("invalid multi-word span")

	// ErrCharacterOffset indicates a token offset that falls outside the document text.
	ErrCharacterOffset = errors.New("character offset out of range")
)
