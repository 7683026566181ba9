package embedding

import "github.com/poiesic/topicmatch/core"

func newLemmaVector(lemma string, v []float32) *core.LemmaVector {
	return &core.LemmaVector{Lemma: lemma, Vector: v}
}
