package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/service"
)

type RepasService interface {
	Marquer(ctx context.Context, eleveID uint, date time.Time, note string, createdBy *uint) (domain.Repas, error)
	MarquerMultiples(ctx context.Context, eleveIDs []uint, date time.Time, createdBy *uint) (domain.MarquageResult, error)
	Get(ctx context.Context, id uint) (domain.Repas, error)
	List(ctx context.Context, filter repository.RepasFilter) ([]domain.Repas, error)
	Update(ctx context.Context, repas domain.Repas) (domain.Repas, error)
	Delete(ctx context.Context, id uint) error
	Statistiques(ctx context.Context, from, to time.Time) (domain.RepasStatistiques, error)
	DecompteJournalier(ctx context.Context, date time.Time) (domain.DecompteJournalier, error)
	DecompteMensuel(ctx context.Context, annee, mois int) (domain.DecompteMensuel, error)
}

type RepasHandler struct {
	svc   RepasService
	audit Auditor
}

func NewRepasHandler(svc RepasService, audit Auditor) *RepasHandler {
	return &RepasHandler{
		svc:   svc,
		audit: audit,
	}
}

// HandleMarquerRepas godoc
// @Summary      Mark a student's meal for a date
// @Description  Marking twice for the same student and date is rejected.
// @Tags         repas
// @Accept       json
// @Produce      json
// @Param        request  body      request.MarquerRepasRequest true "request body"
// @Success      201      {object}  domain.Repas
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /repas [post]
// @Security     BearerAuth
func (h *RepasHandler) HandleMarquerRepas(ctx *gin.Context) {
	req := request.MarquerRepasRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse(request.DateLayout, req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date: %w", err)))
		return
	}

	repas, err := h.svc.Marquer(ctx.Request.Context(), req.EleveID, date, req.Note, actorID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRepasExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrEleveNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEleveNotFound))
		case errors.Is(err, service.ErrEleveInactif):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEleveInactif))
		default:
			err = fmt.Errorf("v1.HandleMarquerRepas -> h.svc.Marquer -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Repas", &repas.ID,
		fmt.Sprintf("repas marque pour l'eleve %d le %s", req.EleveID, req.Date))

	ctx.JSON(http.StatusCreated, repas)
}

// HandleMarquerMultiples godoc
// @Summary      Mark meals for several students at once
// @Description  Already-marked, unknown and inactive students are skipped and
// @Description  reported. The batch never fails halfway.
// @Tags         repas
// @Accept       json
// @Produce      json
// @Param        request  body      request.MarquerMultiplesRequest true "request body"
// @Success      200      {object}  domain.MarquageResult
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /repas/marquer_multiples [post]
// @Security     BearerAuth
func (h *RepasHandler) HandleMarquerMultiples(ctx *gin.Context) {
	req := request.MarquerMultiplesRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse(request.DateLayout, req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date: %w", err)))
		return
	}

	result, err := h.svc.MarquerMultiples(ctx.Request.Context(), req.EleveIDs, date, actorID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleMarquerMultiples -> h.svc.MarquerMultiples -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Repas", nil,
		fmt.Sprintf("marquage groupe de %d repas le %s", result.RepasCrees, req.Date))

	ctx.JSON(http.StatusOK, result)
}

// HandleListRepas godoc
// @Summary      List meal records
// @Tags         repas
// @Produce      json
// @Param        date      query     string  false  "exact date (2006-01-02)"
// @Param        eleve_id  query     int     false  "filter by student"
// @Success      200  {array}   domain.Repas
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /repas [get]
// @Security     BearerAuth
func (h *RepasHandler) HandleListRepas(ctx *gin.Context) {
	filter := repository.RepasFilter{}

	if raw := ctx.Query("date"); raw != "" {
		date, err := time.Parse(request.DateLayout, raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date: %w", err)))
			return
		}
		filter.Date = &date
	}
	eleveID, err := queryUint(ctx, "eleve_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	filter.EleveID = eleveID

	repas, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRepas -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, repas)
}

// HandleListRepasDuJour godoc
// @Summary      List today's meal records
// @Tags         repas
// @Produce      json
// @Success      200  {array}   domain.Repas
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /repas/aujourdhui [get]
// @Security     BearerAuth
func (h *RepasHandler) HandleListRepasDuJour(ctx *gin.Context) {
	today := domain.DateOnly(time.Now())

	repas, err := h.svc.List(ctx.Request.Context(), repository.RepasFilter{Date: &today})
	if err != nil {
		err = fmt.Errorf("v1.HandleListRepasDuJour -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, repas)
}

// HandleGetStatistiques godoc
// @Summary      Get meal statistics over a date range
// @Description  Defaults to the current month when no range is given.
// @Tags         repas
// @Produce      json
// @Param        from  query     string  false  "range start (2006-01-02)"
// @Param        to    query     string  false  "range end (2006-01-02)"
// @Success      200  {object}  domain.RepasStatistiques
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /repas/statistiques [get]
// @Security     BearerAuth
func (h *RepasHandler) HandleGetStatistiques(ctx *gin.Context) {
	now := time.Now()
	from := domain.DateOnly(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	to := from.AddDate(0, 1, -1)

	if raw := ctx.Query("from"); raw != "" {
		parsed, err := time.Parse(request.DateLayout, raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid from: %w", err)))
			return
		}
		from = parsed
	}
	if raw := ctx.Query("to"); raw != "" {
		parsed, err := time.Parse(request.DateLayout, raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid to: %w", err)))
			return
		}
		to = parsed
	}

	stats, err := h.svc.Statistiques(ctx.Request.Context(), from, to)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStatistiques -> h.svc.Statistiques -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetDecompteJournalier godoc
// @Summary      Get the daily meal count sheet
// @Tags         repas
// @Produce      json
// @Param        date  query     string  false  "date (2006-01-02), defaults to today"
// @Success      200  {object}  domain.DecompteJournalier
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /repas/decompte_journalier [get]
// @Security     BearerAuth
func (h *RepasHandler) HandleGetDecompteJournalier(ctx *gin.Context) {
	date, err := queryDate(ctx, "date")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	decompte, err := h.svc.DecompteJournalier(ctx.Request.Context(), date)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDecompteJournalier -> h.svc.DecompteJournalier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, decompte)
}

// HandleGetDecompteMensuel godoc
// @Summary      Get the monthly meal tally
// @Tags         repas
// @Produce      json
// @Param        annee  query     int  false  "year, defaults to current"
// @Param        mois   query     int  false  "month, defaults to current"
// @Success      200  {object}  domain.DecompteMensuel
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /repas/decompte_mensuel [get]
// @Security     BearerAuth
func (h *RepasHandler) HandleGetDecompteMensuel(ctx *gin.Context) {
	annee, mois, err := queryPeriode(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	decompte, err := h.svc.DecompteMensuel(ctx.Request.Context(), annee, mois)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDecompteMensuel -> h.svc.DecompteMensuel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, decompte)
}

// HandleGetRepas godoc
// @Summary      Get one meal record
// @Tags         repas
// @Produce      json
// @Param        id   path      int  true  "Repas ID"
// @Success      200  {object}  domain.Repas
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /repas/{id} [get]
// @Security     BearerAuth
func (h *RepasHandler) HandleGetRepas(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	repas, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRepasNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRepasNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetRepas -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, repas)
}

// HandleUpdateRepas godoc
// @Summary      Update a meal record
// @Tags         repas
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Repas ID"
// @Param        request  body      request.UpdateRepasRequest true "request body"
// @Success      200      {object}  domain.Repas
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /repas/{id} [put]
// @Security     BearerAuth
func (h *RepasHandler) HandleUpdateRepas(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.UpdateRepasRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse(request.DateLayout, req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date: %w", err)))
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), domain.Repas{
		ID:      id,
		EleveID: req.EleveID,
		MenuID:  req.MenuID,
		Date:    date,
		Note:    req.Note,
	})
	if err != nil {
		if errors.Is(err, service.ErrRepasNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRepasNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateRepas -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "Repas", &updated.ID, "mise a jour d'un repas")

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteRepas godoc
// @Summary      Delete a meal record
// @Tags         repas
// @Produce      json
// @Param        id   path      int  true  "Repas ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /repas/{id} [delete]
// @Security     BearerAuth
func (h *RepasHandler) HandleDeleteRepas(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRepasNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRepasNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteRepas -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionDelete, "Repas", &id, "suppression d'un repas")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "repas deleted"})
}
