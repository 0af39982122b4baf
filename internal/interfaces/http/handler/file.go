package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	documentapp "github.com/erp/backoffice/internal/application/document"
	"github.com/erp/backoffice/internal/domain/document"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// FileService renders and archives print forms and fetches attachments.
type FileService interface {
	PrintForm(ctx context.Context, req documentapp.PrintFormRequest) (*document.File, error)
	Attachment(ctx context.Context, fileID string) (*document.File, error)
	Archive(ctx context.Context, req documentapp.PrintFormRequest) (*documentapp.ArchiveResponse, error)
}

// FileHandler serves print forms of documents and attached files.
type FileHandler struct {
	BaseHandler
	files FileService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(files FileService) *FileHandler {
	return &FileHandler{files: files}
}

// RegisterRoutes mounts /files and /attachments.
func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/files/:data_type/:id")
	g.GET("", h.Download)
	g.POST("/archive", h.Archive)
	rg.GET("/attachments/:file_id", h.Attachment)
}

// Download handles GET /files/:data_type/:id?form=, answering the file itself.
func (h *FileHandler) Download(c *gin.Context) {
	req, ok := h.bindFileRequest(c)
	if !ok {
		return
	}
	file, err := h.files.PrintForm(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeFile(c, file)
}

// Attachment handles GET /attachments/:file_id, answering the attached file.
func (h *FileHandler) Attachment(c *gin.Context) {
	var uri dto.AttachmentRequest
	if !h.bindURI(c, &uri) {
		return
	}
	file, err := h.files.Attachment(c.Request.Context(), uri.FileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeFile(c, file)
}

func writeFile(c *gin.Context, file *document.File) {
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if file.FileName != "" {
		c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": file.FileName}))
	}
	c.Data(http.StatusOK, contentType, file.Data)
}

// Archive handles POST /files/:data_type/:id/archive, copying the print form
// to object storage and answering a download link.
func (h *FileHandler) Archive(c *gin.Context) {
	req, ok := h.bindFileRequest(c)
	if !ok {
		return
	}
	out, err := h.files.Archive(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

func (h *FileHandler) bindFileRequest(c *gin.Context) (documentapp.PrintFormRequest, bool) {
	var uri dto.FileRequest
	if !h.bindURI(c, &uri) {
		return documentapp.PrintFormRequest{}, false
	}
	var query dto.FileQuery
	if !h.bindQuery(c, &query) {
		return documentapp.PrintFormRequest{}, false
	}
	return documentapp.PrintFormRequest{DataType: uri.DataType, ID: uri.ID, Form: query.Form}, true
}
