package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/academic-profile-service/internal/domain"
)

func newTestProfileRepo(t *testing.T) *JSONProfileRepository {
	t.Helper()
	return NewJSONProfileRepository(newTestStore(t).Profiles, zerolog.Nop(), nil)
}

func newTestProfile(ownerID, name string) *domain.Profile {
	return &domain.Profile{
		OwnerID:           ownerID,
		Name:              name,
		Title:             "Professor",
		Affiliation:       "Test University",
		ResearchInterests: []string{"Machine Learning"},
	}
}

func TestJSONProfileRepository_GetByOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestProfileRepo(t)

	_, err := repo.GetByOwner(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Upsert(ctx, newTestProfile("u1", "Ada Lovelace"))
	require.NoError(t, err)

	got, err := repo.GetByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.NotEmpty(t, got.ID)
}

func TestJSONProfileRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("second save replaces the first", func(t *testing.T) {
		repo := newTestProfileRepo(t)

		first, err := repo.Upsert(ctx, newTestProfile("u1", "Old Name"))
		require.NoError(t, err)
		second, err := repo.Upsert(ctx, newTestProfile("u1", "New Name"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "New Name", all[0].Name)
	})

	t.Run("preserves collection order", func(t *testing.T) {
		repo := newTestProfileRepo(t)
		for _, owner := range []string{"a", "b", "c"} {
			_, err := repo.Upsert(ctx, newTestProfile(owner, "Name "+owner))
			require.NoError(t, err)
		}

		_, err := repo.Upsert(ctx, newTestProfile("b", "Renamed"))
		require.NoError(t, err)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "a", all[0].OwnerID)
		assert.Equal(t, "Renamed", all[1].Name)
		assert.Equal(t, "c", all[2].OwnerID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo := newTestProfileRepo(t)

		_, err := repo.Upsert(ctx, newTestProfile("u1", "   "))
		require.Error(t, err)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("rejects incomplete education entry", func(t *testing.T) {
		repo := newTestProfileRepo(t)
		p := newTestProfile("u1", "Grace Hopper")
		p.Education = []domain.Education{{Degree: "PhD", Institution: "Yale", Year: "1934"}, {Degree: "MSc"}}

		_, err := repo.Upsert(ctx, p)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "education[1].institution", verr.Field)
	})

	t.Run("fills empty slices", func(t *testing.T) {
		repo := newTestProfileRepo(t)
		p := &domain.Profile{OwnerID: "u1", Name: "Minimal"}

		stored, err := repo.Upsert(ctx, p)
		require.NoError(t, err)
		assert.NotNil(t, stored.ResearchInterests)
		assert.NotNil(t, stored.Education)
	})
}

func TestJSONProfileRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := newTestProfileRepo(t)

	profiles := []*domain.Profile{
		{OwnerID: "u1", Name: "Alice Smith", Title: "Professor", Affiliation: "MIT", ResearchInterests: []string{"Robotics"}},
		{OwnerID: "u2", Name: "Bob Jones", Title: "Lecturer", Affiliation: "Oxford", ResearchInterests: []string{"Databases", "Quantum Computing"}},
		{OwnerID: "u3", Name: "Carol White", Title: "Researcher", Affiliation: "ETH Zurich", ResearchInterests: []string{}},
	}
	for _, p := range profiles {
		_, err := repo.Upsert(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		query  string
		owners []string
	}{
		{"quantum", []string{"u2"}},
		{"ALICE", []string{"u1"}},
		{"oxford", []string{"u2"}},
		{"research", []string{"u3"}},
		{"o", []string{"u1", "u2", "u3"}},
		{"", []string{"u1", "u2", "u3"}},
		{"nothing-matches", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.query)
			require.NoError(t, err)

			owners := make([]string, 0, len(got))
			for _, p := range got {
				owners = append(owners, p.OwnerID)
			}
			assert.Equal(t, tt.owners, owners)
		})
	}
}
