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


// Package embedding provides word similarity oracles for embedding-based matching.
//
// An Oracle returns a similarity in [0, 1] for two lemmas. Out-of-vocabulary
// lemmas have similarity 0 to everything except themselves.
package embedding

import (
	"context"
	"errors"
)

// ErrClosed indicates a similarity request on a closed oracle.
var ErrClosed = errors.New("embedding oracle is closed")

// Oracle answers word similarity questions.
// Implementations must be safe for concurrent use.
type Oracle interface {
	// Similarity returns the similarity of two lemmas in [0, 1].
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// None is an Oracle that knows no word but itself.
type None struct{}

// Similarity implements Oracle.
func (None) Similarity(_ context.Context, a, b string) (float64, error) {
	if a == b {
		return 1, nil
	}
	return 0, nil
}

// pairKey orders a pair so that (a, b) and (b, a) share one key.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}
