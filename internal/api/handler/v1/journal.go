package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
)

type JournalService interface {
	List(ctx context.Context, filter repository.ActionLogFilter) ([]domain.ActionLog, error)
}

type JournalHandler struct {
	svc JournalService
}

func NewJournalHandler(svc JournalService) *JournalHandler {
	return &JournalHandler{
		svc: svc,
	}
}

// HandleListJournal godoc
// @Summary      List audit trail entries, newest first
// @Tags         journal
// @Produce      json
// @Param        user_id  query     int     false  "filter by user"
// @Param        action   query     string  false  "filter by action type"
// @Param        model    query     string  false  "filter by model name"
// @Param        depuis   query     string  false  "entries since (2006-01-02)"
// @Param        limit    query     int     false  "max entries, defaults to 100"
// @Success      200  {array}   domain.ActionLog
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /journal [get]
// @Security     BearerAuth
func (h *JournalHandler) HandleListJournal(ctx *gin.Context) {
	filter := repository.ActionLogFilter{
		Action:    domain.ActionType(ctx.Query("action")),
		ModelName: ctx.Query("model"),
	}

	userID, err := queryUint(ctx, "user_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	filter.UserID = userID

	if raw := ctx.Query("depuis"); raw != "" {
		depuis, err := time.Parse(request.DateLayout, raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid depuis: %w", err)))
			return
		}
		filter.Depuis = &depuis
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid limit: %w", err)))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListJournal -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
