package mcp

import (
	"context"
	"io"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
)

// mockCodebookService is a mock implementation of driving.CodebookService.
type mockCodebookService struct {
	rows    []domain.CodebookRow
	result  driving.Result
	err     error
	patches map[string]domain.RowPatch
	ingests []string
	deleted []string
}

func (m *mockCodebookService) Ingest(_ context.Context, _ ...string) (driving.Result, error) {
	return m.result, m.err
}

func (m *mockCodebookService) Sync(_ context.Context, _ ...string) (driving.Result, error) {
	return m.result, m.err
}

func (m *mockCodebookService) IngestText(_ context.Context, filename, _ string) (driving.Result, error) {
	m.ingests = append(m.ingests, filename)
	return m.result, m.err
}

func (m *mockCodebookService) Derive(_ context.Context) (driving.Result, error) {
	return m.result, m.err
}

func (m *mockCodebookService) Rows(_ context.Context) ([]domain.CodebookRow, error) {
	return m.rows, m.err
}

func (m *mockCodebookService) AddRow(_ context.Context) (domain.CodebookRow, driving.Result, error) {
	if m.err != nil {
		return domain.CodebookRow{}, driving.Result{}, m.err
	}
	row := domain.NewDeductiveRow("new-row")
	m.rows = append(m.rows, row)
	return row, driving.Result{
		Session: domain.Session{Codebook: domain.NewCodebook(m.rows)},
		Effects: []domain.Effect{domain.Announce("Variable added.")},
	}, nil
}

func (m *mockCodebookService) UpdateRow(_ context.Context, id string, patch domain.RowPatch) (driving.Result, error) {
	if m.err != nil {
		return driving.Result{}, m.err
	}
	if m.patches == nil {
		m.patches = make(map[string]domain.RowPatch)
	}
	m.patches[id] = patch
	cb := domain.NewCodebook(m.rows).Update(id, patch)
	m.rows = cb.Rows()
	return driving.Result{Session: domain.Session{Codebook: cb}}, nil
}

func (m *mockCodebookService) DeleteRow(_ context.Context, id string) (driving.Result, error) {
	m.deleted = append(m.deleted, id)
	return m.result, m.err
}

func (m *mockCodebookService) Reset(_ context.Context) (driving.Result, error) {
	return m.result, m.err
}

func (m *mockCodebookService) Export(_ context.Context, _ io.Writer) (driving.Result, error) {
	return m.result, m.err
}

// mockAnnotationService is a mock implementation of driving.AnnotationService.
type mockAnnotationService struct {
	session  domain.Session
	markdown string
	err      error
	drafts   []domain.Draft
	videos   []string
}

func (m *mockAnnotationService) Session(_ context.Context) (domain.Session, error) {
	return m.session, m.err
}

func (m *mockAnnotationService) SetVideo(_ context.Context, ref string) (driving.Result, error) {
	m.videos = append(m.videos, ref)
	m.session.VideoID = ref
	return driving.Result{Session: m.session}, m.err
}

func (m *mockAnnotationService) SaveAnnotation(_ context.Context, draft domain.Draft) (driving.Result, error) {
	if m.err != nil {
		return driving.Result{}, m.err
	}
	m.drafts = append(m.drafts, draft)
	m.session.Annotations = append(m.session.Annotations, domain.Annotation{ID: "a", VideoID: m.session.VideoID})
	m.session.LastMarkdown = "---\nvideo_id: " + m.session.VideoID + "\n---"
	return driving.Result{Session: m.session}, nil
}

func (m *mockAnnotationService) RegisterAxialCategory(_ context.Context, _ string) (driving.Result, error) {
	return driving.Result{Session: m.session}, m.err
}

func (m *mockAnnotationService) ExportSession(_ context.Context) (string, error) {
	return m.markdown, m.err
}

func (m *mockAnnotationService) Reset(_ context.Context) error {
	return m.err
}
