package driving

import (
	"context"
	"io"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// CodebookService drives phase 2: ingestion, derivation, editing and export.
type CodebookService interface {
	// Ingest reads Markdown files and directories, decodes them, appends
	// them to the parsed set and re-derives the codebook.
	Ingest(ctx context.Context, paths ...string) (Result, error)

	// Sync re-reads paths and replaces the parsed set with them before
	// re-deriving. Used when watching a vault.
	Sync(ctx context.Context, paths ...string) (Result, error)

	// IngestText decodes pasted Markdown under filename and re-derives.
	IngestText(ctx context.Context, filename, content string) (Result, error)

	// Derive rebuilds the codebook from the parsed set.
	Derive(ctx context.Context) (Result, error)

	// Rows returns the current codebook rows.
	Rows(ctx context.Context) ([]domain.CodebookRow, error)

	// AddRow appends an empty deductive row.
	AddRow(ctx context.Context) (domain.CodebookRow, Result, error)

	// UpdateRow merges patch into the row with id.
	UpdateRow(ctx context.Context, id string, patch domain.RowPatch) (Result, error)

	// DeleteRow removes the row with id.
	DeleteRow(ctx context.Context, id string) (Result, error)

	// Reset clears parsed documents and the codebook.
	Reset(ctx context.Context) (Result, error)

	// Export writes the codebook spreadsheet to w.
	Export(ctx context.Context, w io.Writer) (Result, error)
}
