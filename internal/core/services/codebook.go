package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/core/ports/driving"
	"github.com/simlab-siue/methodosync/internal/logger"
)

// Ensure CodebookService implements the interface.
var _ driving.CodebookService = (*CodebookService)(nil)

// PastedFilename names documents ingested from pasted text.
const PastedFilename = "pasted-content.md"

// CodebookService drives phase 2.
type CodebookService struct {
	workspace   *Workspace
	transitions *Transitions
	decoder     driven.DocumentDecoder
	reader      driven.VaultReader
	exporter    driven.TableExporter
}

// NewCodebookService creates a new codebook service.
// reader and exporter may be nil; the operations needing them then
// return domain.ErrNotImplemented.
func NewCodebookService(
	workspace *Workspace,
	transitions *Transitions,
	decoder driven.DocumentDecoder,
	reader driven.VaultReader,
	exporter driven.TableExporter,
) *CodebookService {
	return &CodebookService{
		workspace:   workspace,
		transitions: transitions,
		decoder:     decoder,
		reader:      reader,
		exporter:    exporter,
	}
}

// Ingest reads Markdown files, appends them to the parsed set and re-derives.
func (s *CodebookService) Ingest(ctx context.Context, paths ...string) (driving.Result, error) {
	if s.reader == nil {
		return driving.Result{}, domain.ErrNotImplemented
	}
	logger.Section("Ingest")

	docs, err := s.read(ctx, paths)
	if err != nil {
		return driving.Result{}, err
	}
	return s.ingest(ctx, docs)
}

// Sync re-reads paths, replaces the parsed set with them and re-derives.
// When nothing can be selected any more the parsed set and codebook are
// cleared.
func (s *CodebookService) Sync(ctx context.Context, paths ...string) (driving.Result, error) {
	if s.reader == nil {
		return driving.Result{}, domain.ErrNotImplemented
	}
	logger.Section("Sync")

	docs, err := s.read(ctx, paths)
	if errors.Is(err, domain.ErrNoDocuments) {
		return s.workspace.Apply(ctx, s.transitions.ClearParsedDocuments())
	}
	if err != nil {
		return driving.Result{}, err
	}
	return s.workspace.Apply(ctx, Chain(
		s.transitions.ReplaceParsedDocuments(docs),
		s.transitions.DeriveCodebook(),
	))
}

func (s *CodebookService) read(ctx context.Context, paths []string) ([]domain.ParsedDocument, error) {
	files, err := s.reader.Read(ctx, paths...)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.ParsedDocument, 0, len(files))
	for _, f := range files {
		docs = append(docs, s.decodeFile(f))
	}
	return docs, nil
}

// IngestText decodes pasted Markdown and re-derives.
func (s *CodebookService) IngestText(ctx context.Context, filename, content string) (driving.Result, error) {
	if strings.TrimSpace(content) == "" {
		return driving.Result{}, fmt.Errorf("%w: please paste your Markdown content before parsing", domain.ErrEmptyInput)
	}
	if filename == "" {
		filename = PastedFilename
	}
	logger.Section("Ingest")
	return s.ingest(ctx, []domain.ParsedDocument{s.decode(filename, []byte(content))})
}

func (s *CodebookService) ingest(ctx context.Context, docs []domain.ParsedDocument) (driving.Result, error) {
	res, err := s.workspace.Apply(ctx, Chain(
		s.transitions.AddParsedDocuments(docs),
		s.transitions.DeriveCodebook(),
	))
	if err != nil {
		return res, err
	}
	logger.Info("ingested %d documents, codebook has %d rows", len(docs), res.Session.Codebook.Len())
	return res, nil
}

func (s *CodebookService) decodeFile(f driven.VaultFile) domain.ParsedDocument {
	if f.Err != nil {
		logger.Warn("%s: %v", f.Name, f.Err)
		return domain.ParsedDocument{
			Filename:   f.Name,
			ParseError: domain.NewParseError(domain.ParseErrorUnreadable, f.Err.Error()),
		}
	}
	return s.decode(f.Name, f.Content)
}

func (s *CodebookService) decode(name string, content []byte) domain.ParsedDocument {
	doc := s.decoder.Decode(name, content)
	if doc.Failed() {
		logger.Warn("%s: %s", name, doc.ParseError.Message)
	} else {
		logger.Debug("%s: %d candidate categories", name, len(doc.Candidates()))
	}
	return doc
}

// Derive rebuilds the codebook from the parsed set.
func (s *CodebookService) Derive(ctx context.Context) (driving.Result, error) {
	logger.Section("Derive")
	return s.workspace.Apply(ctx, s.transitions.DeriveCodebook())
}

// Rows returns the current codebook rows.
func (s *CodebookService) Rows(ctx context.Context) ([]domain.CodebookRow, error) {
	session, err := s.workspace.Session(ctx)
	if err != nil {
		return nil, err
	}
	return session.Codebook.Rows(), nil
}

// AddRow appends an empty deductive row and returns it.
func (s *CodebookService) AddRow(ctx context.Context) (domain.CodebookRow, driving.Result, error) {
	id := s.transitions.NewID()
	res, err := s.workspace.Apply(ctx, s.transitions.AddRow(id))
	if err != nil {
		return domain.CodebookRow{}, res, err
	}
	row, _ := res.Session.Codebook.Get(id)
	return row, res, nil
}

// UpdateRow merges patch into the row with id.
func (s *CodebookService) UpdateRow(ctx context.Context, id string, patch domain.RowPatch) (driving.Result, error) {
	if patch.IsEmpty() {
		return driving.Result{}, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	if err := s.requireRow(ctx, id); err != nil {
		return driving.Result{}, err
	}
	return s.workspace.Apply(ctx, s.transitions.UpdateRow(id, patch))
}

// DeleteRow removes the row with id.
func (s *CodebookService) DeleteRow(ctx context.Context, id string) (driving.Result, error) {
	if err := s.requireRow(ctx, id); err != nil {
		return driving.Result{}, err
	}
	return s.workspace.Apply(ctx, s.transitions.DeleteRow(id))
}

// requireRow reports ErrNotFound for unknown row IDs so interactive callers
// can tell a typo from a successful edit.
func (s *CodebookService) requireRow(ctx context.Context, id string) error {
	session, err := s.workspace.Session(ctx)
	if err != nil {
		return err
	}
	if _, ok := session.Codebook.Get(id); !ok {
		return fmt.Errorf("%w: codebook row %q", domain.ErrNotFound, id)
	}
	return nil
}

// Reset clears parsed documents and the codebook.
func (s *CodebookService) Reset(ctx context.Context) (driving.Result, error) {
	return s.workspace.Apply(ctx, s.transitions.ClearParsedDocuments())
}

// Export writes the codebook spreadsheet to w from a snapshot of the rows.
func (s *CodebookService) Export(ctx context.Context, w io.Writer) (driving.Result, error) {
	if s.exporter == nil {
		return driving.Result{}, domain.ErrNotImplemented
	}
	session, err := s.workspace.Session(ctx)
	if err != nil {
		return driving.Result{}, err
	}

	table, ok := domain.CodebookTable(session.Codebook.Rows())
	if !ok {
		return driving.Result{Session: session}, domain.ErrEmptyCodebook
	}

	defer logger.Timed("export")()
	if err := s.exporter.Export(ctx, table, w); err != nil {
		return driving.Result{Session: session}, fmt.Errorf("export codebook: %w", err)
	}
	return driving.Result{
		Session: session,
		Effects: []domain.Effect{domain.Announce(msgExported)},
	}, nil
}
