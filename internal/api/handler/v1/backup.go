package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/service"
)

type BackupService interface {
	ExportJSON(ctx context.Context, w io.Writer) error
	Sauvegarder(ctx context.Context) (string, error)
	Lister() ([]service.BackupInfo, error)
	RestaurerJSON(ctx context.Context, r io.Reader) error
	Restaurer(ctx context.Context, name string) error
}

type BackupHandler struct {
	svc   BackupService
	audit Auditor
}

func NewBackupHandler(svc BackupService, audit Auditor) *BackupHandler {
	return &BackupHandler{
		svc:   svc,
		audit: audit,
	}
}

// HandleExportBackup godoc
// @Summary      Download a full database snapshot
// @Tags         backup
// @Produce      json
// @Success      200  {file}    binary
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /backup/export [get]
// @Security     BearerAuth
func (h *BackupHandler) HandleExportBackup(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportJSON(ctx.Request.Context(), &buf); err != nil {
		err = fmt.Errorf("v1.HandleExportBackup -> h.svc.ExportJSON -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionExport, "Backup", nil, "export d'une sauvegarde complete")

	name := fmt.Sprintf("cantine_%s.json", time.Now().UTC().Format("20060102_150405"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(http.StatusOK, "application/json", buf.Bytes())
}

// HandleListBackups godoc
// @Summary      List stored backups, newest first
// @Tags         backup
// @Produce      json
// @Success      200  {array}   service.BackupInfo
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /backup [get]
// @Security     BearerAuth
func (h *BackupHandler) HandleListBackups(ctx *gin.Context) {
	backups, err := h.svc.Lister()
	if err != nil {
		err = fmt.Errorf("v1.HandleListBackups -> h.svc.Lister -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, backups)
}

// HandleCreateBackup godoc
// @Summary      Store a snapshot in the backup directory
// @Tags         backup
// @Produce      json
// @Success      201  {object}  response.MessageResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /backup [post]
// @Security     BearerAuth
func (h *BackupHandler) HandleCreateBackup(ctx *gin.Context) {
	name, err := h.svc.Sauvegarder(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateBackup -> h.svc.Sauvegarder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Backup", nil, "sauvegarde "+name)

	ctx.JSON(http.StatusCreated, response.MessageResponse{Message: name})
}

// HandleRestoreBackup godoc
// @Summary      Restore the database from a stored backup
// @Description  Replaces the entire database content with the named snapshot.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Param        request  body      request.RestaurerBackupRequest true "request body"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /backup/restore [post]
// @Security     BearerAuth
func (h *BackupHandler) HandleRestoreBackup(ctx *gin.Context) {
	req := request.RestaurerBackupRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Restaurer(ctx.Request.Context(), req.Nom); err != nil {
		switch {
		case errors.Is(err, service.ErrBackupNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrBackupNotFound))
		case errors.Is(err, service.ErrSnapshotInvalid), errors.Is(err, service.ErrSnapshotVersion):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRestoreBackup -> h.svc.Restaurer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionImport, "Backup", nil, "restauration de la sauvegarde "+req.Nom)

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "restore done"})
}

// HandleImportBackup godoc
// @Summary      Restore the database from an uploaded snapshot
// @Description  Accepts the snapshot JSON as the request body and replaces
// @Description  the entire database content with it.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /backup/import [post]
// @Security     BearerAuth
func (h *BackupHandler) HandleImportBackup(ctx *gin.Context) {
	if err := h.svc.RestaurerJSON(ctx.Request.Context(), ctx.Request.Body); err != nil {
		switch {
		case errors.Is(err, service.ErrSnapshotInvalid), errors.Is(err, service.ErrSnapshotVersion):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleImportBackup -> h.svc.RestaurerJSON -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionImport, "Backup", nil, "restauration depuis un fichier importe")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "restore done"})
}
