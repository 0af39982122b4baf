package document

import (
	"time"

	"github.com/erp/backoffice/internal/domain/document"
)

// PrintFormRequest names a record and the print form to render.
type PrintFormRequest struct {
	DataType string `json:"data_type"`
	ID       string `json:"id"`
	// Form is the print form name; empty selects the default form.
	Form string `json:"form"`
}

// ArchiveResponse describes an archived print form.
type ArchiveResponse struct {
	document.ArchivedFile
	FileName  string    `json:"file_name"`
	ExpiresAt time.Time `json:"expires_at"`
}
