package embedding

import (
	"context"
	"strings"
)

// Static is an Oracle over a fixed similarity table. Lookups ignore case.
type Static struct {
	table map[string]float64
}

// NewStatic creates an empty Static oracle.
func NewStatic() *Static {
	return &Static{table: make(map[string]float64)}
}

// Set records the similarity of a pair. The table is symmetric and values are
// clamped to [0, 1].
func (s *Static) Set(a, b string, similarity float64) *Static {
	s.table[pairKey(strings.ToLower(a), strings.ToLower(b))] = clamp(similarity)
	return s
}

// Similarity implements Oracle.
func (s *Static) Similarity(_ context.Context, a, b string) (float64, error) {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1, nil
	}
	return s.table[pairKey(a, b)], nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
