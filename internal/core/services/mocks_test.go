package services

import (
	"context"
	"errors"
	"io"

	"github.com/simlab-siue/methodosync/internal/adapters/driven/storage/memory"
	"github.com/simlab-siue/methodosync/internal/codecs/frontmatter"
	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

var errStore = errors.New("store unavailable")

// mockVaultReader returns canned files.
type mockVaultReader struct {
	files []driven.VaultFile
	err   error
	paths []string
}

func (m *mockVaultReader) Read(_ context.Context, paths ...string) ([]driven.VaultFile, error) {
	m.paths = paths
	return m.files, m.err
}

// mockExporter records the table it was given.
type mockExporter struct {
	table domain.Table
	err   error
	calls int
}

func (m *mockExporter) Export(_ context.Context, table domain.Table, w io.Writer) error {
	m.calls++
	m.table = table
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, "xlsx")
	return err
}

func (m *mockExporter) Extension() string { return ".xlsx" }

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Load(context.Context) (domain.Session, error) { return domain.Session{}, errStore }
func (failingStore) Save(context.Context, domain.Session) error   { return errStore }
func (failingStore) Reset(context.Context) error                  { return errStore }

// saveFailingStore loads normally but fails on save.
type saveFailingStore struct {
	*memory.SessionStore
}

func (saveFailingStore) Save(context.Context, domain.Session) error { return errStore }

type testServices struct {
	store       *memory.SessionStore
	workspace   *Workspace
	annotations *AnnotationService
	codebook    *CodebookService
	reader      *mockVaultReader
	exporter    *mockExporter
}

func newTestServices() *testServices {
	store := memory.NewSessionStore()
	ws := NewWorkspace(store)
	codec := frontmatter.New()
	tr := NewTransitions(codec, sequentialIDs())
	reader := &mockVaultReader{}
	exporter := &mockExporter{}
	return &testServices{
		store:       store,
		workspace:   ws,
		annotations: NewAnnotationService(ws, tr, codec),
		codebook:    NewCodebookService(ws, tr, codec, reader, exporter),
		reader:      reader,
		exporter:    exporter,
	}
}
