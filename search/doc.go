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


// Package search runs topic-matching queries against parsed documents.
//
// The TopicMatcher parses a query, derives its phraselets, finds them in the
// documents, scores activation and assembles ranked passages:
//
//	tm, err := search.NewTopicMatcher(parser, matcher)
//	results, err := tm.Match(ctx, "A dog chased a cat", docs, config.Default())
//
// A Monitor observes the intermediate results of each stage.
package search
