package repository

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type memoryDocumentRepository struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
	log         *logrus.Logger
}

func NewMemoryDocumentRepository(logger *logrus.Logger) DocumentRepository {
	return &memoryDocumentRepository{
		collections: make(map[string]map[string]json.RawMessage),
		log:         logger,
	}
}

func (r *memoryDocumentRepository) List(collection string) (map[string]json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make(map[string]json.RawMessage, len(r.collections[collection]))
	for id, doc := range r.collections[collection] {
		docs[id] = doc
	}
	return docs, nil
}

func (r *memoryDocumentRepository) Save(collection string, doc json.RawMessage) (string, error) {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.collections[collection] == nil {
		r.collections[collection] = make(map[string]json.RawMessage)
	}
	r.collections[collection][id] = doc
	r.log.Infof("MemoryRepo: Saved document '%s' in collection '%s' (%d bytes)", id, collection, len(doc))
	return id, nil
}

func (r *memoryDocumentRepository) Get(collection, id string) (json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (r *memoryDocumentRepository) Merge(collection, id string, patch json.RawMessage) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	merged, err := mergeDocuments(existing, patch)
	if err != nil {
		r.log.Errorf("MemoryRepo: Failed to merge document '%s' in collection '%s': %v", id, collection, err)
		return nil, err
	}
	r.collections[collection][id] = merged
	r.log.Infof("MemoryRepo: Merged document '%s' in collection '%s'", id, collection)
	return merged, nil
}
