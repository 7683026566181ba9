package match

import (
	"slices"

	"github.com/poiesic/topicmatch/core"
)

// filterSuperfluous drops relation matches whose evidence another relation
// match already covers better:
//   - the same dependent under the same governor, matched less closely;
//   - the same dependent under a coreferent governor farther away;
//   - the same dependent under a coordinated governor, matched less closely;
//   - a coordinated dependent under the same governor, matched less closely.
func filterSuperfluous(doc *core.Document, matches []StructuralMatch, coreferents func(int) []int) []StructuralMatch {
	drop := make([]bool, len(matches))
	for i := range matches {
		m := &matches[i]
		if m.SingleWord {
			continue
		}
		mGov, mDep := m.Governor(), m.Dependent()
		for j := range matches {
			o := &matches[j]
			if i == j || o.SingleWord {
				continue
			}
			oGov, oDep := o.Governor(), o.Dependent()
			sameLabel := o.PhraseletLabel == m.PhraseletLabel

			if oDep.Token == mDep.Token {
				switch {
				case oGov.Token == mGov.Token:
					drop[i] = drop[i] || oGov.Similarity > mGov.Similarity
				case sameLabel && slices.Contains(coreferents(mGov.Token), oGov.Token):
					drop[i] = drop[i] || abs(oGov.Token-mDep.Token) < abs(mGov.Token-mDep.Token)
				case sameLabel && doc.AreSiblings(oGov.Token, mGov.Token):
					drop[i] = drop[i] || oGov.Similarity > mGov.Similarity
				}
			}
			if oGov.Token == mGov.Token && oDep.Token != mDep.Token && sameLabel &&
				doc.AreSiblings(oDep.Token, mDep.Token) && oDep.Similarity > mDep.Similarity {
				drop[i] = true
			}
		}
	}

	kept := matches[:0]
	for i := range matches {
		if !drop[i] {
			kept = append(kept, matches[i])
		}
	}
	return kept
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
