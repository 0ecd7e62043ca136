package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/academic-profile-service/internal/domain"
)

type note struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func newFileCollection(t *testing.T) (*Collection[note], *FileBackend) {
	t.Helper()
	backend, err := NewFileBackend(t.TempDir(), 0)
	require.NoError(t, err)
	return NewCollection[note](backend, "notes", zerolog.Nop(), nil), backend
}

func TestCollection_ReadAll_MissingIsEmptyAndCreated(t *testing.T) {
	coll, backend := newFileCollection(t)

	records, err := coll.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	data, err := os.ReadFile(backend.Path("notes"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCollection_ReadAll_ZeroLengthIsEmpty(t *testing.T) {
	coll, backend := newFileCollection(t)
	require.NoError(t, os.WriteFile(backend.Path("notes"), []byte("  \n"), 0o644))

	records, err := coll.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollection_WriteThenRead(t *testing.T) {
	coll, _ := newFileCollection(t)
	ctx := context.Background()

	in := []note{{ID: "1", Text: "first"}, {ID: "2", Text: "second"}}
	require.NoError(t, coll.WriteAll(ctx, in))

	out, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCollection_WriteAll_IsIndentedJSONArray(t *testing.T) {
	coll, backend := newFileCollection(t)
	require.NoError(t, coll.WriteAll(context.Background(), []note{{ID: "1", Text: "x"}}))

	data, err := os.ReadFile(backend.Path("notes"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": \"1\",\n    \"text\": \"x\"\n  }\n]", string(data))
}

func TestCollection_CorruptDocument(t *testing.T) {
	coll, backend := newFileCollection(t)
	ctx := context.Background()
	require.NoError(t, os.WriteFile(backend.Path("notes"), []byte("{not json"), 0o644))

	t.Run("read surfaces a storage fault", func(t *testing.T) {
		_, err := coll.ReadAll(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStorageFault))

		var fault *domain.StorageFaultError
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, "notes", fault.Collection)
	})

	t.Run("update refuses to overwrite", func(t *testing.T) {
		called := false
		err := coll.Update(ctx, func(records []note) ([]note, error) {
			called = true
			return append(records, note{ID: "x"}), nil
		})
		assert.ErrorIs(t, err, domain.ErrStorageFault)
		assert.False(t, called)

		data, err := os.ReadFile(backend.Path("notes"))
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(data))
	})
}

func TestCollection_Update_ErrorWritesNothing(t *testing.T) {
	coll, _ := newFileCollection(t)
	ctx := context.Background()
	require.NoError(t, coll.WriteAll(ctx, []note{{ID: "1"}}))

	boom := errors.New("boom")
	err := coll.Update(ctx, func(records []note) ([]note, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	records, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCollection_Update_SerialisesWriters(t *testing.T) {
	coll, _ := newFileCollection(t)
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			err := coll.Update(ctx, func(records []note) ([]note, error) {
				return append(records, note{ID: fmt.Sprintf("n-%d", i)}), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	records, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, writers)
}

func TestCollection_CancelledContext(t *testing.T) {
	coll, _ := newFileCollection(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := coll.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, domain.ErrStorageFault))
}

func TestCollection_Ensure(t *testing.T) {
	coll, backend := newFileCollection(t)
	ctx := context.Background()

	require.NoError(t, coll.Ensure(ctx))
	data, err := os.ReadFile(backend.Path("notes"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, coll.WriteAll(ctx, []note{{ID: "kept"}}))
	require.NoError(t, coll.Ensure(ctx))

	records, err := coll.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []note{{ID: "kept"}}, records)
}

func TestFileBackend_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir, 0o600)
	require.NoError(t, err)

	require.NoError(t, backend.Save(context.Background(), "profiles", []byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "profiles.json", entries[0].Name())

	info, err := os.Stat(filepath.Join(dir, "profiles.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileBackend_SaveReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir, 0o600)
	require.NoError(t, err)
	path := backend.Path("profiles")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"old"}]`), 0o644))

	require.NoError(t, backend.Save(context.Background(), "profiles", []byte(`[{"id":"new"}]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"new"}]`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
