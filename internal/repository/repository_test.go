package repository

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/helixir/academic-profile-service/internal/docstore"
)

// newTestStore opens a file-backed store in a fresh temp directory.
func newTestStore(t *testing.T) *docstore.Store {
	t.Helper()
	store, err := docstore.Open(docstore.Options{DataDir: t.TempDir()}, zerolog.Nop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// sequenceIDs returns an IDGenerator yielding the given ids in order.
func sequenceIDs(ids ...string) IDGenerator {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}
