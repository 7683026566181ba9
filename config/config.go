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


// Package config holds the named options that steer topic matching.
package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/mitchellh/mapstructure"
)

// Config holds every option of a topic-matching request.
type Config struct {
	// RelationScore is the activation contributed by a relation match.
	RelationScore float64 `mapstructure:"relation_score"`

	// ReverseOnlyRelationScore is the activation contributed by a relation match
	// whose phraselet may only be matched from its dependent.
	ReverseOnlyRelationScore float64 `mapstructure:"reverse_only_relation_score"`

	// SingleWordScore is the activation contributed by a tag-checked single-word match.
	SingleWordScore float64 `mapstructure:"single_word_score"`

	// SingleWordAnyTagScore is the activation contributed by a single-word match
	// whose phraselet ignores part-of-speech tags.
	SingleWordAnyTagScore float64 `mapstructure:"single_word_any_tag_score"`

	// OverlappingRelationMultiplier rewards relation matches that reuse tokens of
	// recent, differently labelled relation matches.
	OverlappingRelationMultiplier float64 `mapstructure:"overlapping_relation_multiplier"`

	// OverlapMemorySize is the number of recent relation matches whose tokens are
	// remembered for the overlap multiplier.
	OverlapMemorySize int `mapstructure:"overlap_memory_size"`

	// MaximumActivationDistance is the token distance over which activation decays to zero.
	MaximumActivationDistance int `mapstructure:"maximum_activation_distance"`

	// MaximumActivationValue caps activation at any position.
	MaximumActivationValue float64 `mapstructure:"maximum_activation_value"`

	// MaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries limits how many
	// single-word matches of one phraselet may anchor embedding-based retries in
	// one document. Negative values remove the limit; 0 disables retries.
	MaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries int `mapstructure:"maximum_number_of_single_word_matches_for_embedding_based_retries"`

	// EmbeddingBasedRetryPreexistingMatchCutoff: a retry candidate is skipped when a
	// match already anchored there reaches this similarity. 0 disables retries.
	EmbeddingBasedRetryPreexistingMatchCutoff float64 `mapstructure:"embedding_based_retry_preexisting_match_cutoff"`

	// SidewaysMatchExtent is the maximum distance a topic span grows from its anchor.
	SidewaysMatchExtent int `mapstructure:"sideways_match_extent"`

	// OnlyOneResultPerDocument keeps only the best span of each document.
	OnlyOneResultPerDocument bool `mapstructure:"only_one_result_per_document"`

	// NumberOfResults truncates the ranked list. 0 returns every span.
	NumberOfResults int `mapstructure:"number_of_results"`

	// TiedResultQuotient is the relative tolerance within which a result is
	// ranked level with the head of its group. 0 ties equal scores only.
	TiedResultQuotient float64 `mapstructure:"tied_result_quotient"`

	// OverallSimilarityThreshold enables embedding-based matching below 1.
	OverallSimilarityThreshold float64 `mapstructure:"overall_similarity_threshold"`

	// EmbeddingBasedMatchingOnRootWords lets the root word of a phraselet match
	// via embeddings.
	EmbeddingBasedMatchingOnRootWords bool `mapstructure:"embedding_based_matching_on_root_words"`

	// PerformCoreferenceResolution lets matches reach through coreference groups.
	PerformCoreferenceResolution bool `mapstructure:"perform_coreference_resolution"`
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// Default returns the Config used when a request sets no options.
func Default() *Config {
	return &Config{
		RelationScore:                 30,
		ReverseOnlyRelationScore:      20,
		SingleWordScore:               5,
		SingleWordAnyTagScore:         2,
		OverlappingRelationMultiplier: 1.5,
		OverlapMemorySize:             10,
		MaximumActivationDistance:     75,
		MaximumActivationValue:        1000,
		MaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries: 500,
		EmbeddingBasedRetryPreexistingMatchCutoff:                0.2,
		SidewaysMatchExtent:               100,
		OnlyOneResultPerDocument:          false,
		NumberOfResults:                   10,
		TiedResultQuotient:                0,
		OverallSimilarityThreshold:        1.0,
		EmbeddingBasedMatchingOnRootWords: false,
		PerformCoreferenceResolution:      true,
	}
}

// New creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := config.New(
//	    config.WithRelationScore(20),
//	    config.WithOverallSimilarityThreshold(0.65),
//	)
func New(opts ...Option) *Config {
	cfg := Default()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// With returns a copy of the Config with the options applied.
func (c *Config) With(opts ...Option) *Config {
	cfg := *c
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithRelationScore sets the relation match weight.
func WithRelationScore(v float64) Option {
	return func(c *Config) { c.RelationScore = v }
}

// WithReverseOnlyRelationScore sets the reverse-only relation match weight.
func WithReverseOnlyRelationScore(v float64) Option {
	return func(c *Config) { c.ReverseOnlyRelationScore = v }
}

// WithSingleWordScore sets the tag-checked single-word match weight.
func WithSingleWordScore(v float64) Option {
	return func(c *Config) { c.SingleWordScore = v }
}

// WithSingleWordAnyTagScore sets the any-tag single-word match weight.
func WithSingleWordAnyTagScore(v float64) Option {
	return func(c *Config) { c.SingleWordAnyTagScore = v }
}

// WithOverlappingRelationMultiplier sets the overlap reward.
func WithOverlappingRelationMultiplier(v float64) Option {
	return func(c *Config) { c.OverlappingRelationMultiplier = v }
}

// WithOverlapMemorySize sets the number of remembered relation matches.
func WithOverlapMemorySize(v int) Option {
	return func(c *Config) { c.OverlapMemorySize = v }
}

// WithMaximumActivationDistance sets the decay distance.
func WithMaximumActivationDistance(v int) Option {
	return func(c *Config) { c.MaximumActivationDistance = v }
}

// WithMaximumActivationValue sets the activation cap.
func WithMaximumActivationValue(v float64) Option {
	return func(c *Config) { c.MaximumActivationValue = v }
}

// WithMaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries sets the retry anchor limit.
func WithMaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries(v int) Option {
	return func(c *Config) { c.MaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries = v }
}

// WithEmbeddingBasedRetryPreexistingMatchCutoff sets the retry cutoff.
func WithEmbeddingBasedRetryPreexistingMatchCutoff(v float64) Option {
	return func(c *Config) { c.EmbeddingBasedRetryPreexistingMatchCutoff = v }
}

// WithSidewaysMatchExtent sets the maximum span growth.
func WithSidewaysMatchExtent(v int) Option {
	return func(c *Config) { c.SidewaysMatchExtent = v }
}

// WithOnlyOneResultPerDocument keeps only the best span per document.
func WithOnlyOneResultPerDocument(v bool) Option {
	return func(c *Config) { c.OnlyOneResultPerDocument = v }
}

// WithNumberOfResults sets the result count limit.
func WithNumberOfResults(v int) Option {
	return func(c *Config) { c.NumberOfResults = v }
}

// WithTiedResultQuotient sets the rank tie tolerance.
func WithTiedResultQuotient(v float64) Option {
	return func(c *Config) { c.TiedResultQuotient = v }
}

// WithOverallSimilarityThreshold sets the embedding similarity threshold.
func WithOverallSimilarityThreshold(v float64) Option {
	return func(c *Config) { c.OverallSimilarityThreshold = v }
}

// WithEmbeddingBasedMatchingOnRootWords allows embedding matches on root words.
func WithEmbeddingBasedMatchingOnRootWords(v bool) Option {
	return func(c *Config) { c.EmbeddingBasedMatchingOnRootWords = v }
}

// WithPerformCoreferenceResolution toggles coreference-aware matching.
func WithPerformCoreferenceResolution(v bool) Option {
	return func(c *Config) { c.PerformCoreferenceResolution = v }
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"relation_score", c.RelationScore},
		{"reverse_only_relation_score", c.ReverseOnlyRelationScore},
		{"single_word_score", c.SingleWordScore},
		{"single_word_any_tag_score", c.SingleWordAnyTagScore},
		{"overlap_memory_size", float64(c.OverlapMemorySize)},
		{"sideways_match_extent", float64(c.SidewaysMatchExtent)},
		{"number_of_results", float64(c.NumberOfResults)},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrOutOfRange, f.name, f.value)
		}
	}

	if c.OverlappingRelationMultiplier <= 0 {
		return fmt.Errorf("%w: overlapping_relation_multiplier must be positive, got %v", ErrOutOfRange, c.OverlappingRelationMultiplier)
	}
	if c.MaximumActivationDistance <= 0 {
		return fmt.Errorf("%w: maximum_activation_distance must be positive, got %d", ErrOutOfRange, c.MaximumActivationDistance)
	}
	if c.MaximumActivationValue <= 0 {
		return fmt.Errorf("%w: maximum_activation_value must be positive, got %v", ErrOutOfRange, c.MaximumActivationValue)
	}

	unitInterval := []struct {
		name  string
		value float64
	}{
		{"embedding_based_retry_preexisting_match_cutoff", c.EmbeddingBasedRetryPreexistingMatchCutoff},
		{"tied_result_quotient", c.TiedResultQuotient},
		{"overall_similarity_threshold", c.OverallSimilarityThreshold},
	}
	for _, f := range unitInterval {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("%w: %s must lie in [0, 1], got %v", ErrOutOfRange, f.name, f.value)
		}
	}
	return nil
}

// Names returns the option names accepted by FromMap, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(Default().Map()))
}

// Map renders the Config keyed by option name.
func (c *Config) Map() map[string]any {
	out := make(map[string]any)
	if err := mapstructure.Decode(c, &out); err != nil {
		panic(err)
	}
	return out
}
