// Package match finds phraselets in parsed documents.
//
// Every word comparison goes through one dispatcher that tries, in order,
// exact lemma equality, entity placeholders, ontology relationships and
// embedding similarity. Relation phraselets are matched from the governor,
// reverse-only relations from the dependent. A second pass retries relations
// above single-word matches with embeddings allowed on the governor.
//
// # Usage
//
//	matcher, err := match.NewMatcher(
//	    match.WithOntology(graph),
//	    match.WithOracle(oracle),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer matcher.Release()
//
//	matches, err := matcher.Match(ctx, phraselets, documents, config.Default())
package match
