package topic

import (
	"strconv"

	"github.com/poiesic/topicmatch/core"
)

// Rank assigns ranks to score-ordered matches. A match is tied with the head
// of the current group when its score falls short of the head's by at most
// tolerance, relative to the head's score. With tolerance 0 only equal scores
// tie. Tied matches share the head's rank with a trailing "=".
func Rank(matches []core.TopicMatch, tolerance float64) {
	for head := 0; head < len(matches); {
		next := head + 1
		for next < len(matches) && tied(matches[head].Score, matches[next].Score, tolerance) {
			next++
		}
		rank := strconv.Itoa(head + 1)
		if next-head > 1 {
			rank += "="
		}
		for i := head; i < next; i++ {
			matches[i].Rank = rank
		}
		head = next
	}
}

func tied(current, following, tolerance float64) bool {
	if following == current {
		return true
	}
	return tolerance > 0 && current > 0 && (current-following)/current <= tolerance
}
