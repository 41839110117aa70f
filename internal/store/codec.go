package store

import (
	"bytes"
	"encoding/json"

	"roster/internal/roster"
)

// Encode serializes doc as indented JSON with both categories present.
func Encode(doc *roster.Document) ([]byte, error) {
	out := doc.Clone()
	out.Fill()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a document. Missing or null categories decode as empty.
func Decode(data []byte) (*roster.Document, error) {
	var doc roster.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc.Fill()
	return &doc, nil
}
