package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/academic-profile-service/internal/domain"
)

func newTestPublicationRepo(t *testing.T) *JSONPublicationRepository {
	t.Helper()
	return NewJSONPublicationRepository(newTestStore(t).Publications, zerolog.Nop(), nil)
}

// Helper to create a valid publication for testing.
func newTestPublication(ownerID, title string) *domain.Publication {
	return &domain.Publication{
		OwnerID:   ownerID,
		Title:     title,
		Authors:   []string{"A. Researcher"},
		Journal:   "Journal of Tests",
		Year:      2021,
		Citations: 12,
		Type:      domain.PublicationTypeArticle,
	}
}

func TestJSONPublicationRepository_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("generates id when absent and round-trips", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		in := newTestPublication("u1", "Deep Learning")

		stored, err := repo.Add(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)
		assert.Equal(t, domain.CurrentSchemaVersion, stored.SchemaVersion)
		assert.Empty(t, in.ID, "input must not be mutated")

		owned, err := repo.ListByOwner(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, *stored, owned[0])
	})

	t.Run("never reuses a generated id", func(t *testing.T) {
		repo := newTestPublicationRepo(t)

		first, err := repo.Add(ctx, newTestPublication("u1", "First"))
		require.NoError(t, err)
		second, err := repo.Add(ctx, newTestPublication("u1", "Second"))
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("redraws a generated id that collides", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		repo.newID = sequenceIDs("dup", "dup", "fresh")

		first, err := repo.Add(ctx, newTestPublication("u1", "First"))
		require.NoError(t, err)
		second, err := repo.Add(ctx, newTestPublication("u1", "Second"))
		require.NoError(t, err)

		assert.Equal(t, "dup", first.ID)
		assert.Equal(t, "fresh", second.ID)
	})

	t.Run("keeps caller supplied id", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		in := newTestPublication("u1", "Given")
		in.ID = "pub-42"

		stored, err := repo.Add(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "pub-42", stored.ID)
	})

	t.Run("same owner and id overwrites in place", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		a := newTestPublication("u1", "A")
		a.ID = "a"
		b := newTestPublication("u1", "B")
		b.ID = "b"
		_, err := repo.Add(ctx, a)
		require.NoError(t, err)
		_, err = repo.Add(ctx, b)
		require.NoError(t, err)

		a2 := newTestPublication("u1", "A revised")
		a2.ID = "a"
		a2.Citations = 99
		_, err = repo.Add(ctx, a2)
		require.NoError(t, err)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "a", all[0].ID)
		assert.Equal(t, "A revised", all[0].Title)
		assert.Equal(t, 99, all[0].Citations)
		assert.Equal(t, "b", all[1].ID)
	})

	t.Run("id owned by another researcher conflicts", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		mine := newTestPublication("u1", "Mine")
		mine.ID = "shared"
		_, err := repo.Add(ctx, mine)
		require.NoError(t, err)

		theirs := newTestPublication("u2", "Theirs")
		theirs.ID = "shared"
		_, err = repo.Add(ctx, theirs)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConflict))

		got, err := repo.Get(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.OwnerID)
		assert.Equal(t, "Mine", got.Title)
	})

	t.Run("defaults type to other", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		in := newTestPublication("u1", "Untyped")
		in.Type = ""

		stored, err := repo.Add(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, domain.PublicationTypeOther, stored.Type)
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		repo := newTestPublicationRepo(t)

		tests := []struct {
			name   string
			mutate func(p *domain.Publication)
			field  string
		}{
			{"missing title", func(p *domain.Publication) { p.Title = "  " }, "title"},
			{"negative citations", func(p *domain.Publication) { p.Citations = -1 }, "citations"},
			{"bad year", func(p *domain.Publication) { p.Year = 99 }, "year"},
			{"unknown type", func(p *domain.Publication) { p.Type = "poster" }, "type"},
			{"missing owner", func(p *domain.Publication) { p.OwnerID = "" }, "ownerId"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := newTestPublication("u1", "Valid")
				tt.mutate(in)

				_, err := repo.Add(ctx, in)
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)

				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.field, verr.Field)
			})
		}

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestJSONPublicationRepository_Add_LogsReplacement(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	repo := NewJSONPublicationRepository(newTestStore(t).Publications, zerolog.New(&buf).Level(zerolog.DebugLevel), nil)

	in := newTestPublication("u1", "Original")
	in.ID = "p1"
	_, err := repo.Add(ctx, in)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"publication added"`)

	buf.Reset()
	in.Title = "Revised"
	_, err = repo.Add(ctx, in)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"publication_id":"p1"`)
	assert.Contains(t, buf.String(), `"owner_id":"u1"`)
	assert.Contains(t, buf.String(), `"message":"publication replaced"`)
}

func TestJSONPublicationRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes matching record", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		stored, err := repo.Add(ctx, newTestPublication("u1", "Gone"))
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, stored.ID, "u1")
		require.NoError(t, err)
		assert.True(t, deleted)

		owned, err := repo.ListByOwner(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, owned)
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		_, err := repo.Add(ctx, newTestPublication("u1", "Stays"))
		require.NoError(t, err)
		before, err := repo.ListAll(ctx)
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, "does-not-exist", "u1")
		require.NoError(t, err)
		assert.False(t, deleted)

		after, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("cannot delete another owner's record", func(t *testing.T) {
		repo := newTestPublicationRepo(t)
		theirs := newTestPublication("ownerB", "B's paper")
		theirs.ID = "p1"
		_, err := repo.Add(ctx, theirs)
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, "p1", "ownerA")
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := repo.Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "ownerB", got.OwnerID)
	})
}

func TestJSONPublicationRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestPublicationRepo(t)

	for _, p := range []*domain.Publication{
		newTestPublication("ownerA", "A1"),
		newTestPublication("ownerB", "B1"),
		newTestPublication("ownerA", "A2"),
	} {
		_, err := repo.Add(ctx, p)
		require.NoError(t, err)
	}

	owned, err := repo.ListByOwner(ctx, "ownerA")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "A1", owned[0].Title)
	assert.Equal(t, "A2", owned[1].Title)
	for _, p := range owned {
		assert.Equal(t, "ownerA", p.OwnerID)
	}

	none, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestJSONPublicationRepository_Get_NotFound(t *testing.T) {
	repo := newTestPublicationRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
