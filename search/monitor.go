package search

import (
	"github.com/poiesic/topicmatch/activation"
	"github.com/poiesic/topicmatch/core"
	"github.com/poiesic/topicmatch/match"
	"github.com/poiesic/topicmatch/phraselet"
)

// Monitor provides hooks to observe the topic-matching process.
// Implement this interface to track intermediate steps and results.
type Monitor interface {
	Start(query string)
	AfterParse(query *core.Document)
	AfterPhraseletExtraction(set *phraselet.Set)
	AfterStructuralMatching(matches []match.StructuralMatch)
	AfterActivation(records []activation.Record)
	Finish(results []core.TopicMatch)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                    {}
func (n *noopMonitor) AfterParse(_ *core.Document)                       {}
func (n *noopMonitor) AfterPhraseletExtraction(_ *phraselet.Set)         {}
func (n *noopMonitor) AfterStructuralMatching(_ []match.StructuralMatch) {}
func (n *noopMonitor) AfterActivation(_ []activation.Record)             {}
func (n *noopMonitor) Finish(_ []core.TopicMatch)                        {}
