package repository

import (
	"encoding/json"
	"errors"
)

// DocumentRepository backs the endpoint emulator. Documents are opaque JSON
// grouped into collections ("orders/u1", "products") and keyed by a
// server-generated identifier.
type DocumentRepository interface {
	List(collection string) (map[string]json.RawMessage, error)
	Save(collection string, doc json.RawMessage) (string, error)
	Get(collection, id string) (json.RawMessage, error)
	Merge(collection, id string, patch json.RawMessage) (json.RawMessage, error)
}

var ErrDocumentNotFound = errors.New("document not found")

// mergeDocuments overlays the patch's top-level keys onto the existing
// document, matching the endpoint's PATCH semantics.
func mergeDocuments(existing, patch json.RawMessage) (json.RawMessage, error) {
	var base map[string]interface{}
	if err := json.Unmarshal(existing, &base); err != nil {
		return nil, err
	}
	var overlay map[string]interface{}
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return nil, err
	}
	for k, v := range overlay {
		base[k] = v
	}
	return json.Marshal(base)
}
