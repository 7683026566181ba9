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


// Package storage provides the storage abstraction layer for topicmatch.
//
// This package defines repository interfaces that decouple persistence of parsed
// documents and lemma vectors from the matching engine. The engine itself never
// touches storage; the Manager restores its corpus from a DocumentRepository and
// the embedding oracle reads precomputed vectors from a VectorRepository.
//
// # Serialization
//
// Records are serialized with the hand-written mus serializers in package core.
// Documents are validated and re-indexed on the way out, so a stored document
// that no longer satisfies the data-model rules surfaces as an error instead
// of a corrupt corpus.
package storage
