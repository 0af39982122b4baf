package document

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erp/backoffice/internal/domain/document"
	"github.com/erp/backoffice/internal/domain/shared"
)

// ObjectStorage is where archived print forms are copied. It is implemented
// by the infrastructure layer (S3, MinIO, or the in-memory stub).
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// printableTypes are the data types whose print forms may be fetched.
var printableTypes = map[string]bool{
	shared.TypeOrder:           true,
	shared.TypeCashReceipt:     true,
	shared.TypeSupplierInvoice: true,
	shared.TypeTransferReceipt: true,
}

// IsPrintable reports whether dataType has print forms.
func IsPrintable(dataType string) bool {
	return printableTypes[dataType]
}

// FileServiceConfig holds archive settings.
type FileServiceConfig struct {
	KeyPrefix      string
	DownloadExpiry time.Duration
}

// FileService fetches rendered print forms and attached files, and archives
// print forms.
type FileService struct {
	source  document.FileSource
	storage ObjectStorage
	config  FileServiceConfig
	now     func() time.Time
}

// NewFileService creates a FileService. storage may be nil, in which case
// archiving is reported as not implemented.
func NewFileService(source document.FileSource, storage ObjectStorage, config FileServiceConfig) *FileService {
	if config.DownloadExpiry <= 0 {
		config.DownloadExpiry = 15 * time.Minute
	}
	return &FileService{source: source, storage: storage, config: config, now: time.Now}
}

// PrintForm renders form for the record.
func (s *FileService) PrintForm(ctx context.Context, req PrintFormRequest) (*document.File, error) {
	if err := validateTarget(req); err != nil {
		return nil, err
	}
	return s.source.PrintForm(ctx, shared.NewRef(req.DataType, req.ID), req.Form)
}

// Attachment fetches an attached file by id.
func (s *FileService) Attachment(ctx context.Context, fileID string) (*document.File, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, shared.NewValidationError("file_id", "File id is required")
	}
	return s.source.File(ctx, fileID)
}

// Archive renders form, copies it to object storage and returns a download link.
func (s *FileService) Archive(ctx context.Context, req PrintFormRequest) (*ArchiveResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError(shared.CodeNotImplemented, "File archive is not configured")
	}
	file, err := s.PrintForm(ctx, req)
	if err != nil {
		return nil, err
	}

	key := s.storageKey(req, file)
	if err := s.storage.Upload(ctx, key, file.Data, file.MimeType); err != nil {
		return nil, fmt.Errorf("archive %s: %w", key, err)
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadExpiry)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", key, err)
	}
	return &ArchiveResponse{
		ArchivedFile: document.ArchivedFile{
			Key:         key,
			URL:         url,
			Size:        file.Size(),
			ContentType: file.MimeType,
		},
		FileName:  file.FileName,
		ExpiresAt: expiresAt,
	}, nil
}

// storageKey lays archives out as <prefix><type>/<id>/<date>-<uuid><ext>.
func (s *FileService) storageKey(req PrintFormRequest, file *document.File) string {
	ext := path.Ext(file.FileName)
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(file.MimeType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	name := s.now().UTC().Format("20060102T150405") + "-" + uuid.NewString() + ext
	return s.config.KeyPrefix + path.Join(req.DataType, sanitizeSegment(req.ID), name)
}

func validateTarget(req PrintFormRequest) error {
	if !IsPrintable(req.DataType) {
		return shared.NewValidationError("data_type", "Data type has no print forms")
	}
	if strings.TrimSpace(req.ID) == "" {
		return shared.NewValidationError("id", "Record id is required")
	}
	return nil
}

func sanitizeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '.' {
			return '_'
		}
		return r
	}, s)
}
