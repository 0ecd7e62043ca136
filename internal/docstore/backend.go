// Package docstore persists whole collections of records as JSON documents.
//
// # Overview
//
// Each collection (accounts, profiles, publications) is stored as a single
// JSON array. A Backend moves the raw document in and out of durable storage;
// Collection adds typed decoding, first-access initialisation and write
// serialisation on top of it.
//
// # Backends
//
//   - FileBackend: one <collection>.json file per collection in a data
//     directory. Writes go to a temp file that is renamed into place, so a
//     reader never observes a partial write.
//   - BoltBackend: one key per collection in a bbolt bucket, for deployments
//     that prefer a single database file.
//
// # Read Semantics
//
// A collection that does not exist yet reads as empty and is created as "[]".
// A collection that exists but cannot be read or decoded is reported as a
// *domain.StorageFaultError; it is never silently treated as empty, and
// writes on top of it are refused.
//
// # Thread Safety
//
// Collection serialises read-modify-write cycles with a per-collection mutex.
// Independent collections never block each other.
package docstore

import (
	"context"
	"errors"
)

// Collection names used by the service.
const (
	CollectionAccounts     = "accounts"
	CollectionProfiles     = "profiles"
	CollectionPublications = "publications"
)

// ErrNotExist is returned by a Backend when a collection has never been written.
var ErrNotExist = errors.New("collection does not exist")

// Backend stores raw collection documents.
type Backend interface {
	// Kind returns a short backend identifier used in logs ("file", "bolt").
	Kind() string

	// Load returns the stored document of a collection.
	// Returns ErrNotExist if the collection has never been written.
	Load(ctx context.Context, collection string) ([]byte, error)

	// Save replaces the stored document of a collection.
	// Readers observe either the previous or the new document, never a mix.
	Save(ctx context.Context, collection string, data []byte) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
