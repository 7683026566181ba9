package match

// Kind is the strategy that produced a match. Kinds are ordered by how far the
// document departs from the query.
type Kind int

const (
	// Exact matches share a lemma or text.
	Exact Kind = iota
	// Entity matches satisfy an entity placeholder such as ENTITYGPE.
	Entity
	// Ontology matches are synonyms, hypernyms or hyponyms.
	Ontology
	// Embedding matches are similar by word vectors.
	Embedding
	// ReverseEmbedding matches were found by the retry pass above a single-word match.
	ReverseEmbedding
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Entity:
		return "entity"
	case Ontology:
		return "ontology"
	case Embedding:
		return "embedding"
	case ReverseEmbedding:
		return "reverse-embedding"
	default:
		return "unknown"
	}
}
