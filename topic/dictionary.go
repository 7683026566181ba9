package topic

import (
	"fmt"

	"github.com/poiesic/topicmatch/core"
)

// Dictionaries renders topic matches with rune offsets: the covered sentences
// within the document and the finding within the covered sentences.
func Dictionaries(matches []core.TopicMatch, docs []*core.Document, queryText string) ([]core.TopicMatchDictionary, error) {
	byLabel := make(map[string]*core.Document, len(docs))
	for _, doc := range docs {
		byLabel[doc.Label] = doc
	}

	result := make([]core.TopicMatchDictionary, 0, len(matches))
	for _, m := range matches {
		doc, ok := byLabel[m.DocumentLabel]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, m.DocumentLabel)
		}
		if m.SentencesStartIndex < 0 || m.SentencesEndIndex >= doc.Len() || m.StartIndex < m.SentencesStartIndex || m.EndIndex > m.SentencesEndIndex {
			return nil, fmt.Errorf("%w: match %d..%d in %q", core.ErrTokenIndex, m.StartIndex, m.EndIndex, m.DocumentLabel)
		}
		sentencesStart := doc.Tokens[m.SentencesStartIndex].Idx
		result = append(result, core.TopicMatchDictionary{
			DocumentLabel:                          m.DocumentLabel,
			Text:                                   m.Text,
			TextToMatch:                            queryText,
			Rank:                                   m.Rank,
			SentencesCharacterStartIndexInDocument: sentencesStart,
			SentencesCharacterEndIndexInDocument:   doc.TokenEnd(m.SentencesEndIndex),
			Score:                                  m.Score,
			FindingCharacterStartIndexInSentences:  doc.Tokens[m.StartIndex].Idx - sentencesStart,
			FindingCharacterEndIndexInSentences:    doc.TokenEnd(m.EndIndex) - sentencesStart,
		})
	}
	return result, nil
}
