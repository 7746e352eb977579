package importer

import (
	"context"
	"io"
)

type ImportService interface {
	// ImportWorkbook reads an attendance clock export (xlsx), classifies the
	// marks into shifts and persists them as attendance records.
	ImportWorkbook(ctx context.Context, r io.Reader) (BatchSummary, error)
}
