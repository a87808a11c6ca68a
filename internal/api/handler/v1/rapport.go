package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/service"
)

type RapportService interface {
	Compiler(ctx context.Context, t service.RapportType, ref time.Time) (service.Rapport, error)
	Exporter(ctx context.Context, t service.RapportType, format service.RapportFormat, ref time.Time, w io.Writer) error
}

type RapportHandler struct {
	svc   RapportService
	audit Auditor
}

func NewRapportHandler(svc RapportService, audit Auditor) *RapportHandler {
	return &RapportHandler{
		svc:   svc,
		audit: audit,
	}
}

// HandleGenererRapport godoc
// @Summary      Generate an attendance report
// @Description  Compiles the served meals around a reference date, daily,
// @Description  weekly (Monday start) or monthly, and streams the rendered
// @Description  document as an attachment.
// @Tags         rapports
// @Accept       json
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        request  body      request.RapportRequest true "request body"
// @Success      200      {file}    binary
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /rapports [post]
// @Security     BearerAuth
func (h *RapportHandler) HandleGenererRapport(ctx *gin.Context) {
	req := request.RapportRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ref := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(request.DateLayout, req.Date)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date: %w", err)))
			return
		}
		ref = parsed
	}

	format := service.RapportFormat(req.Format)

	var buf bytes.Buffer
	err := h.svc.Exporter(ctx.Request.Context(), service.RapportType(req.Type), format, ref, &buf)
	if err != nil {
		if errors.Is(err, service.ErrRapportType) || errors.Is(err, service.ErrRapportFormat) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleGenererRapport -> h.svc.Exporter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionExport, "Rapport", nil,
		fmt.Sprintf("rapport %s au format %s", req.Type, req.Format))

	name := fmt.Sprintf("rapport_%s_%s", strings.ToLower(req.Type), ref.Format("20060102"))
	if format == service.FormatPDF {
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
		ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
