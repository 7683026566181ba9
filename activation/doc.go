// Package activation turns structural matches into position-ordered
// activation records.
//
// Activation spreads along a document: every match adds its weight at its
// position, the running value decays linearly with the distance from the
// previous match, and relation matches that reuse tokens of recent relation
// matches are rewarded. The records feed topic assembly.
//
// Basic usage:
//
//	scorer := activation.NewScorer(cfg)
//	records := scorer.Score(matches)
//	peaks := activation.Positions(records)
package activation
