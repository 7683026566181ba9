package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier for stored entities.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Fingerprint identifies the parsed content of a document. Two documents with the
// same label, text and token annotations share a fingerprint.
func Fingerprint(doc *Document) ID {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(doc.Label))
	h.Write([]byte{0})
	h.Write([]byte(doc.Text))
	var buf [8]byte
	for _, tok := range doc.Tokens {
		h.Write([]byte(tok.Lemma))
		h.Write([]byte(tok.Tag))
		h.Write([]byte(tok.Dep))
		binary.LittleEndian.PutUint64(buf[:], uint64(tok.Head))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(tok.Coref))
		h.Write(buf[:])
	}
	return ID(binary.LittleEndian.Uint64(h.Sum(nil)))
}

// Dependency is an additional governor link supplied by the parser on top of the
// syntactic head, for example a preposition-collapsed object or a link propagated
// through coordination.
type Dependency struct {
	Head  int    `json:"head"`
	Label string `json:"label"`
}

// Link is a directed governor/dependent edge in a parsed document.
type Link struct {
	Governor  int
	Dependent int
	Label     string
}

// Token is a single annotated word of a parsed document.
type Token struct {
	Index         int          `json:"index"`          // Position within the document
	Sentence      int          `json:"sentence"`       // Owning sentence number
	SentenceIndex int          `json:"sentence_index"` // Position within the owning sentence
	Text          string       `json:"text"`
	Lemma         string       `json:"lemma"`
	Pos           string       `json:"pos"`  // Coarse part-of-speech tag
	Tag           string       `json:"tag"`  // Fine part-of-speech tag
	Dep           string       `json:"dep"`  // Label of the link to Head
	Head          int          `json:"head"` // Equal to Index for sentence roots
	Semantic      []Dependency `json:"semantic,omitempty"`
	EntType       string       `json:"ent_type,omitempty"`
	Idx           int          `json:"idx"`             // Rune offset of Text within the document text
	Coref         int          `json:"coref,omitempty"` // Coreference group; 0 means none
	Vector        []float32    `json:"vector,omitempty"`
}

// IsRoot reports whether the token heads its sentence.
func (t *Token) IsRoot() bool {
	return t.Head == t.Index
}

// Sentence is a half-open token range [Start, End).
type Sentence struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of tokens in the sentence.
func (s Sentence) Len() int {
	return s.End - s.Start
}

// Span is a multi-word named span such as "Richard Paul Hudson". Start and End
// form a half-open token range and Head lies inside it.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Head  int `json:"head"`
}

// Contains reports whether the token index lies inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// DocumentRecord is the persisted form of a Document: its annotations
// without the derived indexes.
type DocumentRecord struct {
	Label     string
	Text      string
	Tokens    []Token
	Sentences []Sentence
	Spans     []Span
}

// LemmaVector is an embedding computed for a lemma.
type LemmaVector struct {
	Lemma  string
	Vector []float32
}

// ScoredLemma is a lemma returned by a vector similarity search.
type ScoredLemma struct {
	Lemma string
	Score float32
}

// TopicMatch is a ranked document passage judged relevant to a query.
type TopicMatch struct {
	DocumentLabel       string
	Score               float64
	Rank                string
	StartIndex          int // First matched token
	EndIndex            int // Last matched token (inclusive)
	SentencesStartIndex int // First token of the first covered sentence
	SentencesEndIndex   int // Last token of the last covered sentence (inclusive)
	RelativeStartIndex  int
	RelativeEndIndex    int
	Text                string // Text of the covered sentences
	Labels              []string
}

// TopicMatchDictionary is the flattened form of a TopicMatch with character offsets.
// Character offsets count runes.
type TopicMatchDictionary struct {
	DocumentLabel                           string  `json:"document_label"`
	Text                                    string  `json:"text"`
	TextToMatch                             string  `json:"text_to_match"`
	Rank                                    string  `json:"rank"`
	SentencesCharacterStartIndexInDocument  int     `json:"sentences_character_start_index_in_document"`
	SentencesCharacterEndIndexInDocument    int     `json:"sentences_character_end_index_in_document"`
	Score                                   float64 `json:"score"`
	FindingCharacterStartIndexInSentences   int     `json:"finding_character_start_index_in_sentences"`
	FindingCharacterEndIndexInSentences     int     `json:"finding_character_end_index_in_sentences"`
}

// Map renders the dictionary as a generic map keyed by the JSON field names.
func (d TopicMatchDictionary) Map() map[string]any {
	return map[string]any{
		"document_label": d.DocumentLabel,
		"text":           d.Text,
		"text_to_match":  d.TextToMatch,
		"rank":           d.Rank,
		"sentences_character_start_index_in_document": d.SentencesCharacterStartIndexInDocument,
		"sentences_character_end_index_in_document":   d.SentencesCharacterEndIndexInDocument,
		"score": d.Score,
		"finding_character_start_index_in_sentences": d.FindingCharacterStartIndexInSentences,
		"finding_character_end_index_in_sentences":   d.FindingCharacterEndIndexInSentences,
	}
}
