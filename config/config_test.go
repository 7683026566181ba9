package config

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 30.0, cfg.RelationScore)
	assert.Equal(t, 20.0, cfg.ReverseOnlyRelationScore)
	assert.Equal(t, 5.0, cfg.SingleWordScore)
	assert.Equal(t, 2.0, cfg.SingleWordAnyTagScore)
	assert.Equal(t, 1.5, cfg.OverlappingRelationMultiplier)
	assert.Equal(t, 10, cfg.OverlapMemorySize)
	assert.Equal(t, 75, cfg.MaximumActivationDistance)
	assert.Equal(t, 1000.0, cfg.MaximumActivationValue)
	assert.Equal(t, 500, cfg.MaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries)
	assert.Equal(t, 0.2, cfg.EmbeddingBasedRetryPreexistingMatchCutoff)
	assert.Equal(t, 100, cfg.SidewaysMatchExtent)
	assert.False(t, cfg.OnlyOneResultPerDocument)
	assert.Equal(t, 10, cfg.NumberOfResults)
	assert.Equal(t, 0.0, cfg.TiedResultQuotient)
	assert.Equal(t, 1.0, cfg.OverallSimilarityThreshold)
	assert.False(t, cfg.EmbeddingBasedMatchingOnRootWords)
	assert.True(t, cfg.PerformCoreferenceResolution)
	assert.NoError(t, cfg.Validate())
}

func TestNew(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		assert.Equal(t, Default(), New())
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := New(
			WithRelationScore(20),
			WithReverseOnlyRelationScore(15),
			WithSingleWordScore(10),
			WithSingleWordAnyTagScore(5),
			WithOverallSimilarityThreshold(0.85),
			WithOnlyOneResultPerDocument(true),
		)

		assert.Equal(t, 20.0, cfg.RelationScore)
		assert.Equal(t, 15.0, cfg.ReverseOnlyRelationScore)
		assert.Equal(t, 10.0, cfg.SingleWordScore)
		assert.Equal(t, 5.0, cfg.SingleWordAnyTagScore)
		assert.Equal(t, 0.85, cfg.OverallSimilarityThreshold)
		assert.True(t, cfg.OnlyOneResultPerDocument)
	})
}

func TestWithLeavesReceiverUntouched(t *testing.T) {
	base := Default()
	derived := base.With(WithNumberOfResults(3), WithPerformCoreferenceResolution(false))

	assert.Equal(t, 10, base.NumberOfResults)
	assert.True(t, base.PerformCoreferenceResolution)
	assert.Equal(t, 3, derived.NumberOfResults)
	assert.False(t, derived.PerformCoreferenceResolution)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative relation score", WithRelationScore(-1)},
		{"negative single word score", WithSingleWordScore(-0.5)},
		{"zero multiplier", WithOverlappingRelationMultiplier(0)},
		{"negative memory", WithOverlapMemorySize(-1)},
		{"zero distance", WithMaximumActivationDistance(0)},
		{"zero cap", WithMaximumActivationValue(0)},
		{"cutoff above one", WithEmbeddingBasedRetryPreexistingMatchCutoff(1.5)},
		{"negative extent", WithSidewaysMatchExtent(-3)},
		{"negative results", WithNumberOfResults(-1)},
		{"quotient above one", WithTiedResultQuotient(1.1)},
		{"negative threshold", WithOverallSimilarityThreshold(-0.1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.opt).Validate()
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}

	t.Run("unlimited retries", func(t *testing.T) {
		cfg := New(WithMaximumNumberOfSingleWordMatchesForEmbeddingBasedRetries(-1))
		assert.NoError(t, cfg.Validate())
	})
}

func TestFromMap(t *testing.T) {
	t.Run("applies values of mixed types", func(t *testing.T) {
		cfg, err := FromMap(map[string]any{
			"relation_score":                 20,
			"Single-Word-Score":              "10",
			"overall_similarity_threshold":   0.65,
			"only_one_result_per_document":   "true",
			"perform_coreference_resolution": false,
			"number_of_results":              float64(3),
		})
		require.NoError(t, err)

		assert.Equal(t, 20.0, cfg.RelationScore)
		assert.Equal(t, 10.0, cfg.SingleWordScore)
		assert.Equal(t, 0.65, cfg.OverallSimilarityThreshold)
		assert.True(t, cfg.OnlyOneResultPerDocument)
		assert.False(t, cfg.PerformCoreferenceResolution)
		assert.Equal(t, 3, cfg.NumberOfResults)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := FromMap(map[string]any{"relation_weight": 3})
		assert.ErrorIs(t, err, ErrUnknownOption)
	})

	t.Run("converts strings", func(t *testing.T) {
		cfg, err := FromMap(map[string]any{
			"OVERLAP_MEMORY_SIZE":                    "4",
			"embedding-based-matching-on-root-words": "1",
			"tied_result_quotient":                   "0.25",
		})
		require.NoError(t, err)

		assert.Equal(t, 4, cfg.OverlapMemorySize)
		assert.True(t, cfg.EmbeddingBasedMatchingOnRootWords)
		assert.Equal(t, 0.25, cfg.TiedResultQuotient)
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		_, err := FromMap(map[string]any{"number_of_results": "many"})
		assert.ErrorIs(t, err, ErrInvalidValue)

		_, err = FromMap(map[string]any{"only_one_result_per_document": "perhaps"})
		assert.ErrorIs(t, err, ErrInvalidValue)

		_, err = FromMap(map[string]any{"relation_score": "lots"})
		assert.ErrorIs(t, err, ErrInvalidValue)

		_, err = FromMap(map[string]any{"sideways_match_extent": []string{"a"}})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("names every unknown option", func(t *testing.T) {
		_, err := FromMap(map[string]any{"relation_weight": 3, "score": 1, "relation_score": 2})
		require.ErrorIs(t, err, ErrUnknownOption)
		assert.Contains(t, err.Error(), "relation_weight, score")
	})

	t.Run("validates the result", func(t *testing.T) {
		_, err := FromMap(map[string]any{"tied_result_quotient": 2})
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestNamesMatchMap(t *testing.T) {
	names := Names()
	m := Default().Map()

	assert.Len(t, names, 17)
	assert.Len(t, names, len(m))
	for _, name := range names {
		assert.Contains(t, m, name)
	}
	assert.True(t, slices.IsSorted(names))
}

func TestMapRoundTrip(t *testing.T) {
	cfg := New(WithRelationScore(20), WithNumberOfResults(3), WithOnlyOneResultPerDocument(true))
	m := cfg.Map()

	assert.Equal(t, 20.0, m["relation_score"])
	assert.Equal(t, 3, m["number_of_results"])
	assert.Equal(t, true, m["only_one_result_per_document"])

	restored, err := FromMap(m)
	require.NoError(t, err)
	assert.Equal(t, cfg, restored)
}
