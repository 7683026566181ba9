package match

// WordMatch records how one phraselet word matched a document token.
type WordMatch struct {
	// QueryLemma is the key of the phraselet word.
	QueryLemma string

	// Token is the document token whose lemma matched. With coreference it may
	// differ from the token at the structural position.
	Token int

	Kind       Kind
	Similarity float64

	// Span grades a multi-word query word against the document token.
	Span SpanMatch

	// Path is the ontology chain from the query word to the document word.
	Path []string
}

// SpanMatch is how much of a multi-word query span a document token covers.
type SpanMatch int

const (
	// NoSpan is a match of a query word that is not a multi-word span.
	NoSpan SpanMatch = iota
	// SpanDependent matched the span head lemma on a dependent of a document span.
	SpanDependent
	// SpanHead matched the span head lemma alone.
	SpanHead
	// SpanIdentity matched the whole span.
	SpanIdentity
)

// StructuralMatch is one phraselet found in one document.
type StructuralMatch struct {
	PhraseletLabel string
	DocumentLabel  string

	// Index is the document token the match is anchored at: the governor
	// position for relations, the matched position for single words.
	Index int

	// Words holds one match for single words, governor then dependent for relations.
	Words []WordMatch

	Kind       Kind
	Similarity float64

	SingleWord  bool
	AnyTag      bool
	ReverseOnly bool

	// DependencyLabel is the document label joining the words of a relation.
	DependencyLabel string

	order int
}

// Tokens returns the matched document tokens.
func (m *StructuralMatch) Tokens() []int {
	tokens := make([]int, len(m.Words))
	for i, w := range m.Words {
		tokens[i] = w.Token
	}
	return tokens
}

// Governor returns the word match of the governor, or of the only word.
func (m *StructuralMatch) Governor() WordMatch {
	return m.Words[0]
}

// Dependent returns the word match of a relation's dependent.
func (m *StructuralMatch) Dependent() WordMatch {
	return m.Words[1]
}

func maxKind(kinds ...Kind) Kind {
	result := Exact
	for _, k := range kinds {
		if k > result {
			result = k
		}
	}
	return result
}
