// Package mock provides test doubles for the AI service interfaces.
//
// The mocks let tests run without an embedding service while keeping vectors
// deterministic.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Fixed vectors per text
//	mockEmbedder := mock.NewMockEmbedder().WithVectors(map[string][]float32{
//	    "car":        {1, 0},
//	    "automobile": {0.8, 0.6},
//	})
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns deterministic unit vectors derived from a hash of the text.
package mock
