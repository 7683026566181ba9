package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec:"
	documentOrderPrefix  = "docord:"
	documentLabelPrefix  = "doclbl:"
	documentFPPrefix     = "docfp:"
	documentSeq          = "docseq"
	vectorRecordPrefix   = "vecrec:"
)

// makeDocumentKey generates the key of a stored document by label.
func makeDocumentKey(label string) []byte {
	return []byte(documentRecordPrefix + label)
}

// makeDocumentOrderKey generates a key for the registration order index.
// Format: prefix:seq
func makeDocumentOrderKey(seq uint64) []byte {
	prefixBytes := []byte(documentOrderPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeDocumentLabelKey generates the key mapping a label to its order sequence.
func makeDocumentLabelKey(label string) []byte {
	return []byte(documentLabelPrefix + label)
}

// makeDocumentFingerprintKey generates the key holding a document's fingerprint.
func makeDocumentFingerprintKey(label string) []byte {
	return []byte(documentFPPrefix + label)
}

// makeVectorKey generates the key of a lemma vector.
func makeVectorKey(lemma string) []byte {
	return []byte(vectorRecordPrefix + lemma)
}

func encodeSeq(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}

func decodeSeq(val []byte) uint64 {
	return binary.BigEndian.Uint64(val)
}
