package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/service"
)

type InscriptionService interface {
	Create(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error)
	InscrireGroupe(ctx context.Context, eleveIDs []uint, annee, mois int, createdBy *uint) (int, error)
	Get(ctx context.Context, id uint) (domain.InscriptionMensuelle, error)
	List(ctx context.Context, filter repository.InscriptionFilter) ([]domain.InscriptionMensuelle, error)
	Update(ctx context.Context, inscription domain.InscriptionMensuelle) (domain.InscriptionMensuelle, error)
	Delete(ctx context.Context, id uint) error
}

type InscriptionHandler struct {
	svc   InscriptionService
	audit Auditor
}

func NewInscriptionHandler(svc InscriptionService, audit Auditor) *InscriptionHandler {
	return &InscriptionHandler{
		svc:   svc,
		audit: audit,
	}
}

// HandleListInscriptions godoc
// @Summary      List monthly enrollments
// @Tags         inscriptions
// @Produce      json
// @Param        annee     query     int  false  "filter by year"
// @Param        mois      query     int  false  "filter by month"
// @Param        eleve_id  query     int  false  "filter by student"
// @Success      200  {array}   domain.InscriptionMensuelle
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inscriptions [get]
// @Security     BearerAuth
func (h *InscriptionHandler) HandleListInscriptions(ctx *gin.Context) {
	filter := repository.InscriptionFilter{}

	if ctx.Query("annee") != "" || ctx.Query("mois") != "" {
		annee, mois, err := queryPeriode(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		filter.Annee = annee
		filter.Mois = mois
	}
	eleveID, err := queryUint(ctx, "eleve_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	filter.EleveID = eleveID

	inscriptions, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListInscriptions -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, inscriptions)
}

// HandleGetInscription godoc
// @Summary      Get one enrollment
// @Tags         inscriptions
// @Produce      json
// @Param        id   path      int  true  "Inscription ID"
// @Success      200  {object}  domain.InscriptionMensuelle
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inscriptions/{id} [get]
// @Security     BearerAuth
func (h *InscriptionHandler) HandleGetInscription(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	inscription, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInscriptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInscriptionNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetInscription -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, inscription)
}

// HandleCreateInscription godoc
// @Summary      Enroll a student for a month
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        request  body      request.InscriptionRequest true "request body"
// @Success      201      {object}  domain.InscriptionMensuelle
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /inscriptions [post]
// @Security     BearerAuth
func (h *InscriptionHandler) HandleCreateInscription(ctx *gin.Context) {
	req := request.InscriptionRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	inscription := domain.InscriptionMensuelle{
		EleveID:     req.EleveID,
		Annee:       req.Annee,
		Mois:        req.Mois,
		Inscrit:     true,
		Notes:       req.Notes,
		CreatedByID: actorID(ctx),
	}
	if req.Inscrit != nil {
		inscription.Inscrit = *req.Inscrit
	}

	created, err := h.svc.Create(ctx.Request.Context(), inscription)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInscriptionExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrEleveNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEleveNotFound))
		default:
			err = fmt.Errorf("v1.HandleCreateInscription -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "InscriptionMensuelle", &created.ID,
		fmt.Sprintf("inscription de l'eleve %d pour %02d/%d", created.EleveID, created.Mois, created.Annee))

	ctx.JSON(http.StatusCreated, created)
}

// HandleInscrireGroupe godoc
// @Summary      Enroll several students for a month at once
// @Description  Students already enrolled for the month are skipped.
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        request  body      request.InscrireGroupeRequest true "request body"
// @Success      200      {object}  response.InscriptionGroupeResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /inscriptions/groupe [post]
// @Security     BearerAuth
func (h *InscriptionHandler) HandleInscrireGroupe(ctx *gin.Context) {
	req := request.InscrireGroupeRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	inscrits, err := h.svc.InscrireGroupe(ctx.Request.Context(), req.EleveIDs, req.Annee, req.Mois, actorID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleInscrireGroupe -> h.svc.InscrireGroupe -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "InscriptionMensuelle", nil,
		fmt.Sprintf("inscription groupee de %d eleves pour %02d/%d", inscrits, req.Mois, req.Annee))

	ctx.JSON(http.StatusOK, response.InscriptionGroupeResponse{
		Message:  "group enrollment done",
		Inscrits: inscrits,
	})
}

// HandleUpdateInscription godoc
// @Summary      Update an enrollment
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Inscription ID"
// @Param        request  body      request.UpdateInscriptionRequest true "request body"
// @Success      200      {object}  domain.InscriptionMensuelle
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /inscriptions/{id} [put]
// @Security     BearerAuth
func (h *InscriptionHandler) HandleUpdateInscription(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.UpdateInscriptionRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	current, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInscriptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInscriptionNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateInscription -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	current.Inscrit = *req.Inscrit
	current.Notes = req.Notes

	updated, err := h.svc.Update(ctx.Request.Context(), current)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateInscription -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "InscriptionMensuelle", &updated.ID, "mise a jour d'une inscription")

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteInscription godoc
// @Summary      Delete an enrollment
// @Tags         inscriptions
// @Produce      json
// @Param        id   path      int  true  "Inscription ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inscriptions/{id} [delete]
// @Security     BearerAuth
func (h *InscriptionHandler) HandleDeleteInscription(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrInscriptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInscriptionNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteInscription -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionDelete, "InscriptionMensuelle", &id, "suppression d'une inscription")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "inscription deleted"})
}
