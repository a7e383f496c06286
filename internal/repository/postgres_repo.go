package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type postgresDocumentRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresDocumentRepository(db *sql.DB, logger *logrus.Logger) DocumentRepository {
	return &postgresDocumentRepository{
		db:  db,
		log: logger,
	}
}

// EnsureSchema creates the documents table if it does not exist yet.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS documents (
            collection TEXT  NOT NULL,
            id         TEXT  NOT NULL,
            doc        JSONB NOT NULL,
            PRIMARY KEY (collection, id)
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

func (r *postgresDocumentRepository) List(collection string) (map[string]json.RawMessage, error) {
	rows, err := r.db.Query(`SELECT id, doc FROM documents WHERE collection = $1`, collection)
	if err != nil {
		r.log.Errorf("PostgresRepo: Failed to list collection '%s': %v", collection, err)
		return nil, fmt.Errorf("could not list documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[string]json.RawMessage)
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			r.log.Errorf("PostgresRepo: Failed to scan document row in '%s': %v", collection, err)
			return nil, fmt.Errorf("could not scan document: %w", err)
		}
		docs[id] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("document iteration failed: %w", err)
	}
	return docs, nil
}

func (r *postgresDocumentRepository) Save(collection string, doc json.RawMessage) (string, error) {
	id := uuid.NewString()

	_, err := r.db.Exec(`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`,
		collection, id, []byte(doc))
	if err != nil {
		r.log.Errorf("PostgresRepo: Failed to save document in '%s': %v", collection, err)
		return "", fmt.Errorf("could not save document: %w", err)
	}

	r.log.Infof("PostgresRepo: Saved document '%s' in collection '%s'", id, collection)
	return id, nil
}

func (r *postgresDocumentRepository) Get(collection, id string) (json.RawMessage, error) {
	var doc []byte
	err := r.db.QueryRow(`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		r.log.Errorf("PostgresRepo: Failed to get document '%s' from '%s': %v", id, collection, err)
		return nil, fmt.Errorf("could not get document: %w", err)
	}
	return doc, nil
}

func (r *postgresDocumentRepository) Merge(collection, id string, patch json.RawMessage) (json.RawMessage, error) {
	var doc []byte
	err := r.db.QueryRow(`
        UPDATE documents SET doc = doc || $3::jsonb
        WHERE collection = $1 AND id = $2
        RETURNING doc`,
		collection, id, []byte(patch)).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		r.log.Errorf("PostgresRepo: Failed to merge document '%s' in '%s': %v", id, collection, err)
		return nil, fmt.Errorf("could not merge document: %w", err)
	}
	return doc, nil
}
