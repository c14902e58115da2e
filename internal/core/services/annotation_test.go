package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

func TestAnnotationService_Workflow(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices().annotations

	_, err := svc.SetVideo(ctx, "https://youtu.be/dQw4w9WgXcQ?t=5")
	require.NoError(t, err)

	res, err := svc.SaveAnnotation(ctx, domain.Draft{
		Timestamp:       12,
		ObservationText: "Crowd gathers.",
		OpenCodes:       []string{"crowd"},
		AxialCategory:   "Setting",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Annotation saved."}, res.Announcements())
	assert.Contains(t, res.Session.LastMarkdown, `axial_category: "[[Setting]]"`)

	_, err = svc.SaveAnnotation(ctx, domain.Draft{Timestamp: 75, OpenCodes: []string{"crowd", "noise"}})
	require.NoError(t, err)

	session, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Len(t, session.Annotations, 2)
	assert.Equal(t, []string{"Setting"}, session.AxialCategories)

	doc, err := svc.ExportSession(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "---\nvideo_id: dQw4w9WgXcQ\n"))
	assert.Contains(t, doc, "total_annotations: 2")
	assert.Contains(t, doc, "## Annotation 2 — 1:15")
}

func TestAnnotationService_SaveWithoutVideo(t *testing.T) {
	svc := newTestServices().annotations

	_, err := svc.SaveAnnotation(context.Background(), domain.Draft{Timestamp: 1})

	assert.ErrorIs(t, err, domain.ErrNoVideo)
}

func TestAnnotationService_SaveDropsSeparatorOnlyCodes(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices().annotations
	_, err := svc.SetVideo(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)

	res, err := svc.SaveAnnotation(ctx, domain.Draft{
		Timestamp: 3,
		OpenCodes: []string{" , ,", "fear", ",,, ,"},
	})
	require.NoError(t, err)

	require.Len(t, res.Session.Annotations, 1)
	assert.Equal(t, []string{"fear"}, res.Session.Annotations[0].OpenCodes)
	assert.NotContains(t, res.Session.LastMarkdown, "- ,")
}

func TestAnnotationService_ExportSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices().annotations

	_, err := svc.ExportSession(ctx)
	assert.ErrorIs(t, err, domain.ErrNoVideo)

	_, err = svc.SetVideo(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)

	doc, err := svc.ExportSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestAnnotationService_RegisterAndReset(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices().annotations

	res, err := svc.RegisterAxialCategory(ctx, "Tone")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tone"}, res.Session.AxialCategories)

	require.NoError(t, svc.Reset(ctx))
	session, _ := svc.Session(ctx)
	assert.Empty(t, session.AxialCategories)
}
