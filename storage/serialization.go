package storage

import (
	"fmt"

	"github.com/poiesic/topicmatch/core"
)

func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

func MarshalDocument(doc *core.Document) []byte {
	record := doc.Record()
	buf := make([]byte, core.DocumentRecordMUS.Size(record))
	core.DocumentRecordMUS.Marshal(record, buf)
	return buf
}

// UnmarshalDocument decodes a document and rebuilds its indexes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	record, _, err := core.DocumentRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return record.Document()
}

func MarshalLemmaVector(v *core.LemmaVector) []byte {
	buf := make([]byte, core.LemmaVectorMUS.Size(*v))
	core.LemmaVectorMUS.Marshal(*v, buf)
	return buf
}

func UnmarshalLemmaVector(data []byte) (*core.LemmaVector, error) {
	v, _, err := core.LemmaVectorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &v, nil
}
