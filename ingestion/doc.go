// Package ingestion provides pipeline orchestration for registering documents.
//
// The Pipeline type manages the registration workflow, including:
//   - Parsing texts concurrently through the external parser
//   - Persisting parsed documents to storage
//   - Embedding the lemmas of new documents asynchronously
//
// Parsing is bounded by the pool size. Errors during async embedding are logged
// but do not fail the registration.
package ingestion
