// Package vectorize precomputes embedding vectors for the lemmas of stored
// documents so that embedding-based matching can run without calling the
// embedding service at query time.
//
// Lemmas are collected from every registered document, split into batches and
// embedded concurrently. Failed embedding calls are retried with exponential
// backoff, and vectors are normalized before they are written to the vector
// repository.
package vectorize
