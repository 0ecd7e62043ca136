package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/academic-profile-service/internal/docstore"
	"github.com/helixir/academic-profile-service/internal/domain"
)

// runCLI executes academicctl against dataDir and returns its stdout.
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--env-file", "", "--data-dir", dataDir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seed(t *testing.T, dataDir, collection string, records interface{}) {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, collection+".json"), data, 0o644))
}

func TestAccountCreateAndList(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "account", "create", "--username", "ada", "--password", "s3cret", "--email", "ada@example.com")
	require.NoError(t, err)

	var created accountView
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "ada", created.Username)
	assert.NotEmpty(t, created.ID)
	assert.NotContains(t, out, "s3cret")

	out, err = runCLI(t, dir, "account", "list")
	require.NoError(t, err)

	var listed []accountView
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	raw, err := os.ReadFile(filepath.Join(dir, docstore.CollectionAccounts+".json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret", "password must be stored hashed")
}

func TestAccountCreate_Duplicate(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "account", "create", "--username", "ada", "--password", "pw", "--email", "ada@example.com")
	require.NoError(t, err)

	_, err = runCLI(t, dir, "account", "create", "--username", "ada", "--password", "pw2", "--email", "other@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAccountCreate_MissingFlag(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "account", "create", "--username", "ada", "--password", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, docstore.CollectionPublications, []domain.Publication{
		{ID: "a", OwnerID: "u1", Title: "A", Year: 2018, Citations: 40, Type: domain.PublicationTypeArticle},
		{ID: "b", OwnerID: "u1", Title: "B", Year: 2019, Citations: 12, Type: domain.PublicationTypeArticle},
		{ID: "c", OwnerID: "u2", Title: "C", Year: 2019, Citations: 1, Type: domain.PublicationTypeBook},
	})

	out, err := runCLI(t, dir, "stats")
	require.NoError(t, err)
	var global statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &global))
	assert.Equal(t, "global", global.Scope)
	assert.Equal(t, 3, global.Statistics.TotalPublications)
	assert.Equal(t, 53, global.Statistics.TotalCitations)

	out, err = runCLI(t, dir, "stats", "--owner", "u1")
	require.NoError(t, err)
	var owner statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &owner))
	assert.Equal(t, "owner", owner.Scope)
	assert.Equal(t, 2, owner.Statistics.HIndex)
	assert.Equal(t, 2, owner.Statistics.I10Index)
}

func TestStats_EmptyStore(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "stats", "--owner", "nobody")
	require.NoError(t, err)

	var got statsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Zero(t, got.Statistics.TotalPublications)
	assert.Zero(t, got.Statistics.HIndex)
	assert.Empty(t, got.Statistics.CitationsByYear)
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, docstore.CollectionProfiles, []domain.Profile{
		{ID: "p1", OwnerID: "u1", Name: "Grace Hopper", ResearchInterests: []string{"Compilers"}},
		{ID: "p2", OwnerID: "u2", Name: "Alan Turing", ResearchInterests: []string{"Computability"}},
	})

	out, err := runCLI(t, dir, "search", "COMPILER")
	require.NoError(t, err)
	var found []domain.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "u1", found[0].OwnerID)

	out, err = runCLI(t, dir, "search")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	assert.Len(t, found, 2)
}

func TestPublications(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, docstore.CollectionPublications, []domain.Publication{
		{ID: "a", OwnerID: "u1", Title: "A", Year: 2015, Citations: 5, Type: domain.PublicationTypeArticle},
		{ID: "b", OwnerID: "u2", Title: "B", Year: 2022, Citations: 1, Type: domain.PublicationTypeArticle},
		{ID: "c", OwnerID: "u1", Title: "C", Year: 2020, Citations: 50, Type: domain.PublicationTypeConference},
	})

	out, err := runCLI(t, dir, "publications", "--owner", "u1")
	require.NoError(t, err)
	var pubs []domain.Publication
	require.NoError(t, json.Unmarshal([]byte(out), &pubs))
	require.Len(t, pubs, 2)
	assert.Equal(t, "a", pubs[0].ID, "owner listing keeps insertion order")

	out, err = runCLI(t, dir, "publications", "--sort", "citations", "--limit", "1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &pubs))
	require.Len(t, pubs, 1)
	assert.Equal(t, "c", pubs[0].ID)
}

func TestStoreMigrateAndCopy(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, docstore.CollectionProfiles, []domain.Profile{{ID: "p1", OwnerID: "u1", Name: "Ada"}})

	out, err := runCLI(t, dir, "store", "migrate")
	require.NoError(t, err)
	var report docstore.MigrationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Profiles)

	boltPath := filepath.Join(t.TempDir(), "academic.db")
	out, err = runCLI(t, dir, "store", "copy", "--to-backend", "bolt", "--to-bolt-path", boltPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, docstore.MigrationReport{Profiles: 1}, report)

	_, err = os.Stat(boltPath)
	assert.NoError(t, err)
}

func TestHumanOutput(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--human", "account", "list")
	require.NoError(t, err)
	assert.Equal(t, "No accounts\n", out)
}
