package activation

import "github.com/poiesic/topicmatch/match"

// Record is the activation reached at one structural match.
type Record struct {
	Match         match.StructuralMatch
	DocumentLabel string
	Position      int

	// Value is capped at the configured maximum activation value.
	Value float64

	// Unconstrained is the activation without the cap.
	Unconstrained float64

	// Distance is the number of tokens since the previous match in the same
	// document, 0 for the first.
	Distance int
}

// Position identifies a token of a registered document.
type Position struct {
	DocumentLabel string
	Index         int
}

// Positions returns the highest activation reached at each position.
func Positions(records []Record) map[Position]float64 {
	result := make(map[Position]float64, len(records))
	for _, r := range records {
		key := Position{DocumentLabel: r.DocumentLabel, Index: r.Position}
		if v, ok := result[key]; !ok || r.Value > v {
			result[key] = r.Value
		}
	}
	return result
}
