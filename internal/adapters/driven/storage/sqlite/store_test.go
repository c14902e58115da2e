package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func sampleSession() domain.Session {
	return domain.Session{
		VideoID: "dQw4w9WgXcQ",
		Annotations: []domain.Annotation{
			{
				ID:              "a1",
				VideoID:         "dQw4w9WgXcQ",
				Timestamp:       65.4,
				ObservationText: "A child cries.\nThe crowd turns.",
				OpenCodes:       []string{"fear", "hope"},
				AxialCategory:   "[[Emotional Tone]]",
				AnalyticalMemo:  "Possible theme.",
			},
			{ID: "a2", VideoID: "other", Timestamp: 0, OpenCodes: []string{}},
		},
		AxialCategories: []string{"[[Emotional Tone]]", "Setting"},
		ParsedDocuments: []domain.ParsedDocument{
			{Filename: "synthesis.md", IdentifiedCategories: []string{"Violence"}, OverarchingThemes: []string{}},
			{Filename: "a1.md", AxialCategory: "Emotional Tone"},
			{Filename: "bad.md", ParseError: domain.NewParseError(domain.ParseErrorSyntax, "line 2: oops")},
		},
		Codebook: domain.NewCodebook([]domain.CodebookRow{
			domain.NewInductiveRow("r1", "Violence"),
			domain.NewDeductiveRow("r2"),
		}),
		LastMarkdown: "---\nvideo_id: dQw4w9WgXcQ\n---",
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "session.db"), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsVersion(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SessionStore().Save(context.Background(), sampleSession()))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	loaded, err := second.SessionStore().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", loaded.VideoID)
}

func TestMigrate_SkipsAppliedAndUnnumbered(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"001_initial.up.sql": {Data: []byte("CREATE TABLE should_not_run (x INTEGER);")},
		"002_extra.up.sql":   {Data: []byte("CREATE TABLE extra (x INTEGER);")},
		"002_extra.down.sql": {Data: []byte("DROP TABLE extra;")},
		"README.up.sql":      {Data: []byte("not sql")},
	}
	require.NoError(t, store.migrate(ctx, fsys))

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)

	var n int
	err := store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'should_not_run'").Scan(&n)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	session, err := store.SessionStore().Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, session.VideoID)
	assert.Empty(t, session.Annotations)
	assert.Equal(t, 0, session.Codebook.Len())
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := sampleSession()

	require.NoError(t, store.SessionStore().Save(ctx, want))
	got, err := store.SessionStore().Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.VideoID, got.VideoID)
	assert.Equal(t, want.LastMarkdown, got.LastMarkdown)
	assert.Equal(t, want.Annotations, got.Annotations)
	assert.Equal(t, want.AxialCategories, got.AxialCategories)
	assert.Equal(t, want.Codebook.Rows(), got.Codebook.Rows())

	require.Len(t, got.ParsedDocuments, 3)
	assert.Equal(t, want.ParsedDocuments[0], got.ParsedDocuments[0])
	assert.Nil(t, got.ParsedDocuments[1].IdentifiedCategories, "absent stays absent")
	assert.NotNil(t, got.ParsedDocuments[0].OverarchingThemes, "present but empty stays empty")
	require.NotNil(t, got.ParsedDocuments[2].ParseError)
	assert.Equal(t, domain.ParseErrorSyntax, got.ParsedDocuments[2].ParseError.Kind)
	assert.Equal(t, "YAML parse error: line 2: oops", got.ParsedDocuments[2].ParseError.Message)
}

func TestSessionStore_SaveReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	ss := store.SessionStore()

	require.NoError(t, ss.Save(ctx, sampleSession()))

	next := sampleSession()
	next.Codebook = next.Codebook.Delete("r1").AddManual("r3")
	next.ParsedDocuments = nil
	require.NoError(t, ss.Save(ctx, next))

	got, err := ss.Load(ctx)
	require.NoError(t, err)
	rows := got.Codebook.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "r2", rows[0].ID)
	assert.Equal(t, "r3", rows[1].ID)
	assert.Empty(t, got.ParsedDocuments)
}

func TestSessionStore_SaveRejectsInvalidSource(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	ss := store.SessionStore()
	require.NoError(t, ss.Save(ctx, sampleSession()))

	bad := domain.Session{Codebook: domain.NewCodebook([]domain.CodebookRow{{ID: "x", Source: "imported"}})}
	err := ss.Save(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := ss.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Codebook.Len(), "failed save must roll back")
}

func TestSessionStore_Reset(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	ss := store.SessionStore()
	require.NoError(t, ss.Save(ctx, sampleSession()))

	require.NoError(t, ss.Reset(ctx))

	got, err := ss.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.VideoID)
	assert.Empty(t, got.Annotations)
	assert.Empty(t, got.AxialCategories)
	assert.Empty(t, got.ParsedDocuments)
	assert.Equal(t, 0, got.Codebook.Len())
}
