package driven

import (
	"context"
	"io"

	"github.com/simlab-siue/methodosync/internal/core/domain"
)

// TableExporter writes a codebook table as a spreadsheet artifact.
// The table is a value snapshot; later session edits do not affect an
// export in progress.
type TableExporter interface {
	// Export writes the spreadsheet to w.
	Export(ctx context.Context, table domain.Table, w io.Writer) error

	// Extension returns the file extension of the artifact, including the dot.
	Extension() string
}
