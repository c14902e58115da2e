package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

func TestServer_handleSanitize(t *testing.T) {
	server := newTestServer(t, &Ports{Codebook: &mockCodebookService{}})

	_, out, err := server.handleSanitize(context.Background(), nil, SanitizeInput{Label: "[[Emotional Tone]]"})

	require.NoError(t, err)
	assert.Equal(t, "emotional_tone", out.VariableName)
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("reports announcements and failures", func(t *testing.T) {
		cb := &mockCodebookService{result: driving.Result{
			Session: domain.Session{
				ParsedDocuments: []domain.ParsedDocument{
					{Filename: "ok.md", AxialCategory: "Tone"},
					{Filename: "bad.md", ParseError: domain.NewParseError(domain.ParseErrorNoFrontmatter, "")},
				},
				Codebook: domain.NewCodebook([]domain.CodebookRow{domain.NewInductiveRow("r1", "Tone")}),
			},
			Effects: []domain.Effect{domain.Announce("Processed 1 file. 1 file had errors.")},
		}}
		server := newTestServer(t, &Ports{Codebook: cb})

		_, out, err := server.handleIngest(ctx, nil, IngestInput{Filename: "bad.md", Content: "x"})

		require.NoError(t, err)
		assert.Equal(t, []string{"bad.md"}, cb.ingests)
		assert.Equal(t, []string{"Processed 1 file. 1 file had errors."}, out.Messages)
		assert.Equal(t, 1, out.Variables)
		require.Len(t, out.Failed, 1)
		assert.Equal(t, "bad.md", out.Failed[0].Filename)
		assert.Contains(t, out.Failed[0].Error, "No YAML frontmatter found")
	})

	t.Run("returns service error", func(t *testing.T) {
		cb := &mockCodebookService{err: domain.ErrEmptyInput}
		server := newTestServer(t, &Ports{Codebook: cb})

		_, _, err := server.handleIngest(ctx, nil, IngestInput{Content: " "})

		assert.ErrorIs(t, err, domain.ErrEmptyInput)
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()

	t.Run("empty codebook", func(t *testing.T) {
		server := newTestServer(t, &Ports{Codebook: &mockCodebookService{}})

		_, out, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
		assert.NotNil(t, out.Rows)
	})

	t.Run("returns rows", func(t *testing.T) {
		cb := &mockCodebookService{rows: []domain.CodebookRow{domain.NewDeductiveRow("r1")}}
		server := newTestServer(t, &Ports{Codebook: cb})

		_, out, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 1, out.Count)
		assert.Equal(t, "r1", out.Rows[0].ID)
	})
}

func TestServer_handleAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adds empty row", func(t *testing.T) {
		cb := &mockCodebookService{}
		server := newTestServer(t, &Ports{Codebook: cb})

		_, out, err := server.handleAdd(ctx, nil, AddInput{})

		require.NoError(t, err)
		assert.Equal(t, "new-row", out.Row.ID)
		assert.Equal(t, domain.RowSourceDeductive, out.Row.Source)
		assert.Empty(t, cb.patches)
	})

	t.Run("applies initial fields", func(t *testing.T) {
		cb := &mockCodebookService{}
		server := newTestServer(t, &Ports{Codebook: cb})

		_, out, err := server.handleAdd(ctx, nil, AddInput{Fields: map[string]string{"variable_name": "age"}})

		require.NoError(t, err)
		assert.Equal(t, "age", out.Row.VariableName)
	})

	t.Run("rejects unknown field before adding", func(t *testing.T) {
		cb := &mockCodebookService{}
		server := newTestServer(t, &Ports{Codebook: cb})

		_, _, err := server.handleAdd(ctx, nil, AddInput{Fields: map[string]string{"id": "x"}})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, cb.rows)
	})
}

func TestServer_handleUpdate(t *testing.T) {
	ctx := context.Background()
	cb := &mockCodebookService{rows: []domain.CodebookRow{domain.NewDeductiveRow("r1")}}
	server := newTestServer(t, &Ports{Codebook: cb})

	_, out, err := server.handleUpdate(ctx, nil, UpdateInput{
		ID:     "r1",
		Fields: map[string]string{"definition": "Presence of X", "anchor_example": "clip 3"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Variables)
	patch := cb.patches["r1"]
	require.NotNil(t, patch.DefinitionText)
	assert.Equal(t, "Presence of X", *patch.DefinitionText)
	require.NotNil(t, patch.AnchorExample)
	assert.Nil(t, patch.VariableName)

	_, _, err = server.handleUpdate(ctx, nil, UpdateInput{ID: "r1", Fields: map[string]string{"source": "inductive"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_handleDelete(t *testing.T) {
	ctx := context.Background()
	cb := &mockCodebookService{result: driving.Result{Effects: []domain.Effect{domain.Announce("Variable deleted.")}}}
	server := newTestServer(t, &Ports{Codebook: cb})

	_, out, err := server.handleDelete(ctx, nil, DeleteInput{ID: "r9"})

	require.NoError(t, err)
	assert.Equal(t, []string{"r9"}, cb.deleted)
	assert.Equal(t, []string{"Variable deleted."}, out.Messages)

	cb.err = errors.New("not found")
	_, _, err = server.handleDelete(ctx, nil, DeleteInput{ID: "r9"})
	assert.Error(t, err)
}

func TestServer_handleAnnotate(t *testing.T) {
	ctx := context.Background()

	t.Run("switches video and saves", func(t *testing.T) {
		ann := &mockAnnotationService{}
		server := newTestServer(t, &Ports{Codebook: &mockCodebookService{}, Annotation: ann})

		_, out, err := server.handleAnnotate(ctx, nil, AnnotateInput{
			Video:     "dQw4w9WgXcQ",
			Timestamp: 12.5,
			OpenCodes: []string{"fear,", " fear", "", "hope"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"dQw4w9WgXcQ"}, ann.videos)
		require.Len(t, ann.drafts, 1)
		assert.Equal(t, []string{"fear", "hope"}, ann.drafts[0].OpenCodes)
		assert.Equal(t, "dQw4w9WgXcQ", out.VideoID)
		assert.Equal(t, "dQw4w9WgXcQ-1.md", out.Filename)
		assert.Contains(t, out.Markdown, "video_id: dQw4w9WgXcQ")
	})

	t.Run("propagates missing video", func(t *testing.T) {
		ann := &mockAnnotationService{err: domain.ErrNoVideo}
		server := newTestServer(t, &Ports{Codebook: &mockCodebookService{}, Annotation: ann})

		_, _, err := server.handleAnnotate(ctx, nil, AnnotateInput{Timestamp: 1})

		assert.ErrorIs(t, err, domain.ErrNoVideo)
	})

	t.Run("requires annotation port", func(t *testing.T) {
		server := newTestServer(t, &Ports{Codebook: &mockCodebookService{}})

		_, _, err := server.handleAnnotate(ctx, nil, AnnotateInput{Timestamp: 1})

		assert.ErrorIs(t, err, errNoAnnotationService)
	})
}

func TestPatchFromFields(t *testing.T) {
	patch, err := patchFromFields(nil)
	require.NoError(t, err)
	assert.True(t, patch.IsEmpty())

	_, err = patchFromFields(map[string]string{"b_bad": "x", "a_bad": "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "a_bad"`)
}
