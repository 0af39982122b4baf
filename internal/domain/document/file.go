package document

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
)

// File is a binary attachment or rendered print form.
type File struct {
	FileName string
	MimeType string
	Data     []byte
}

// Size returns the content length in bytes.
func (f *File) Size() int64 {
	return int64(len(f.Data))
}

// FileSource fetches files held by the accounting service.
type FileSource interface {
	// PrintForm renders the named print form for a record. An empty form
	// selects the record's default form.
	PrintForm(ctx context.Context, object shared.Ref, form string) (*File, error)
	// File fetches an attached file by its id.
	File(ctx context.Context, fileID string) (*File, error)
}

// ArchivedFile is a file copied to object storage.
type ArchivedFile struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
