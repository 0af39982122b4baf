package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// RecordService is the read and write surface shared by every editable
// resource. Preview validates a form and returns the record that would be
// sent, without sending it.
type RecordService[In, Out any] interface {
	GetByID(ctx context.Context, id string) (*Out, error)
	Preview(ctx context.Context, id string, in In) (*Out, error)
	Create(ctx context.Context, in In) (*Out, error)
	Update(ctx context.Context, id string, in In) (*Out, error)
}

// recordHandler serves GET /:id, POST and PUT /:id for one resource.
// Writes accept ?dry_run=true.
type recordHandler[In, Out any] struct {
	BaseHandler
	records RecordService[In, Out]
}

func (h *recordHandler[In, Out]) GetByID(c *gin.Context) {
	out, err := h.records.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func (h *recordHandler[In, Out]) Create(c *gin.Context) {
	var flags dto.WriteRequest
	if !h.bindQuery(c, &flags) {
		return
	}
	var in In
	if !h.bindJSON(c, &in) {
		return
	}

	ctx := c.Request.Context()
	if flags.DryRun {
		out, err := h.records.Preview(ctx, "", in)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, out)
		return
	}

	out, err := h.records.Create(ctx, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

func (h *recordHandler[In, Out]) Update(c *gin.Context) {
	var flags dto.WriteRequest
	if !h.bindQuery(c, &flags) {
		return
	}
	var in In
	if !h.bindJSON(c, &in) {
		return
	}

	ctx, id := c.Request.Context(), c.Param("id")
	var (
		out *Out
		err error
	)
	if flags.DryRun {
		out, err = h.records.Preview(ctx, id, in)
	} else {
		out, err = h.records.Update(ctx, id, in)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// registerRecordRoutes mounts the record routes on rg.
func (h *recordHandler[In, Out]) registerRecordRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", h.GetByID)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
}
