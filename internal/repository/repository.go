// Package repository provides data access interfaces and implementations
// for the academic profile service.
//
// # Overview
//
// This package defines repository interfaces and their document-store
// implementations following the repository pattern to abstract persistence
// from the directory and HTTP layers.
//
// # Repository Interfaces
//
//   - ProfileRepository: one public profile per owner, upserted by owner id
//   - PublicationRepository: publications scoped to an owner, globally unique ids
//   - AccountRepository: researcher logins with unique usernames
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use by multiple goroutines.
// Every mutation is a read-modify-write cycle executed under the write lock of
// its docstore.Collection, so concurrent writers to the same collection never
// clobber each other. Collections are independent; no operation spans two.
//
// # Error Handling
//
// All methods return domain-specific errors from the domain package:
//
//   - domain.ErrNotFound: Resource does not exist
//   - domain.ErrAlreadyExists: Unique constraint violation (usernames)
//   - domain.ErrInvalidInput: Record failed validation
//   - domain.ErrConflict: Publication id is owned by another researcher
//   - domain.ErrStorageFault: Backing collection is unreadable or corrupt
//
// # Usage Pattern
//
//	store, _ := docstore.Open(opts, logger, metrics)
//	profiles := repository.NewJSONProfileRepository(store.Profiles, logger, metrics)
//	publications := repository.NewJSONPublicationRepository(store.Publications, logger, metrics)
//	accounts := repository.NewJSONAccountRepository(store.Accounts, logger)
package repository

import (
	"github.com/google/uuid"
)

// IDGenerator returns a fresh, globally unique record id.
type IDGenerator func() string

// NewUUID is the default IDGenerator.
func NewUUID() string {
	return uuid.NewString()
}
