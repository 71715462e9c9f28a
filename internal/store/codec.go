package store

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Codec turns the document into its stored representation and back.
type Codec interface {
	Encode(doc *Document) ([]byte, error)
	Decode(data []byte) (*Document, error)
}

// JSONCodec writes indented JSON with sorted keys and RFC 3339 dates.
type JSONCodec struct{}

func (JSONCodec) Encode(doc *Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	return append(b, '\n'), nil
}

func (JSONCodec) Decode(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("decode document: empty input")
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "decode document")
	}
	doc.normalize()
	return doc, nil
}
