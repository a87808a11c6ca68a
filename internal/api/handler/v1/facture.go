package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/config"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/service"
)

type FactureService interface {
	Create(ctx context.Context, facture domain.Facture) (domain.Facture, error)
	GenererDepuisDecompte(ctx context.Context, annee, mois int, prixUnitaire decimal.Decimal, createdBy *uint) (domain.Facture, error)
	Get(ctx context.Context, id uint) (domain.Facture, error)
	List(ctx context.Context, filter repository.FactureFilter) ([]domain.Facture, error)
	Update(ctx context.Context, facture domain.Facture) (domain.Facture, error)
	ChangerStatut(ctx context.Context, id uint, next domain.FactureStatut) (domain.Facture, error)
	Delete(ctx context.Context, id uint) error
}

type FactureHandler struct {
	conf  *config.CantineConfig
	svc   FactureService
	audit Auditor
}

func NewFactureHandler(conf *config.CantineConfig, svc FactureService, audit Auditor) *FactureHandler {
	return &FactureHandler{
		conf:  conf,
		svc:   svc,
		audit: audit,
	}
}

// HandleListFactures godoc
// @Summary      List invoices
// @Tags         factures
// @Produce      json
// @Param        annee   query     int     false  "filter by year"
// @Param        mois    query     int     false  "filter by month"
// @Param        statut  query     string  false  "filter by status"
// @Param        numero  query     string  false  "match on invoice number"
// @Success      200  {array}   domain.Facture
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /factures [get]
// @Security     BearerAuth
func (h *FactureHandler) HandleListFactures(ctx *gin.Context) {
	filter := repository.FactureFilter{
		Statut: domain.FactureStatut(ctx.Query("statut")),
		Numero: ctx.Query("numero"),
	}
	if ctx.Query("annee") != "" || ctx.Query("mois") != "" {
		annee, mois, err := queryPeriode(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		filter.Annee = annee
		filter.Mois = mois
	}

	factures, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListFactures -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, factures)
}

// HandleGetFacture godoc
// @Summary      Get one invoice
// @Tags         factures
// @Produce      json
// @Param        id   path      int  true  "Facture ID"
// @Success      200  {object}  domain.Facture
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /factures/{id} [get]
// @Security     BearerAuth
func (h *FactureHandler) HandleGetFacture(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	facture, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFactureNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFactureNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetFacture -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, facture)
}

func factureFromRequest(req request.FactureRequest) (domain.Facture, error) {
	prix, err := decimal.NewFromString(req.PrixUnitaireRepas)
	if err != nil {
		return domain.Facture{}, fmt.Errorf("invalid prix_unitaire_repas: %w", err)
	}

	return domain.Facture{
		Annee:              req.Annee,
		Mois:               req.Mois,
		NombreJoursTravail: req.NombreJoursTravail,
		NombreRepasServis:  req.NombreRepasServis,
		PrixUnitaireRepas:  prix,
		Notes:              req.Notes,
	}, nil
}

// HandleCreateFacture godoc
// @Summary      Create an invoice
// @Description  The invoice number and total are computed server side. New
// @Description  invoices always start as drafts.
// @Tags         factures
// @Accept       json
// @Produce      json
// @Param        request  body      request.FactureRequest true "request body"
// @Success      201      {object}  domain.Facture
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /factures [post]
// @Security     BearerAuth
func (h *FactureHandler) HandleCreateFacture(ctx *gin.Context) {
	req := request.FactureRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	facture, err := factureFromRequest(req)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	facture.CreatedByID = actorID(ctx)

	created, err := h.svc.Create(ctx.Request.Context(), facture)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodeInvalide), errors.Is(err, service.ErrPrixInvalide):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateFacture -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Facture", &created.ID, "creation de la facture "+created.Numero)

	ctx.JSON(http.StatusCreated, created)
}

// HandleGenererFacture godoc
// @Summary      Generate an invoice from the monthly meal tally
// @Tags         factures
// @Accept       json
// @Produce      json
// @Param        request  body      request.GenererFactureRequest true "request body"
// @Success      201      {object}  domain.Facture
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /factures/generer [post]
// @Security     BearerAuth
func (h *FactureHandler) HandleGenererFacture(ctx *gin.Context) {
	req := request.GenererFactureRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// Without an explicit unit price the configured default applies.
	rawPrix := req.PrixUnitaireRepas
	if rawPrix == "" {
		rawPrix = h.conf.PrixRepasParDefaut
	}
	prix, err := decimal.NewFromString(rawPrix)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid prix_unitaire_repas: %w", err)))
		return
	}

	created, err := h.svc.GenererDepuisDecompte(ctx.Request.Context(), req.Annee, req.Mois, prix, actorID(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodeInvalide), errors.Is(err, service.ErrPrixInvalide):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleGenererFacture -> h.svc.GenererDepuisDecompte -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Facture", &created.ID,
		fmt.Sprintf("generation de la facture %s depuis le decompte %02d/%d", created.Numero, req.Mois, req.Annee))

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateFacture godoc
// @Summary      Update a draft invoice
// @Description  The number, status and dates are immutable through this
// @Description  endpoint. The total is recomputed.
// @Tags         factures
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Facture ID"
// @Param        request  body      request.FactureRequest true "request body"
// @Success      200      {object}  domain.Facture
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /factures/{id} [put]
// @Security     BearerAuth
func (h *FactureHandler) HandleUpdateFacture(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.FactureRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	facture, err := factureFromRequest(req)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	facture.ID = id

	updated, err := h.svc.Update(ctx.Request.Context(), facture)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFactureNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFactureNotFound))
		case errors.Is(err, service.ErrPeriodeInvalide), errors.Is(err, service.ErrPrixInvalide):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateFacture -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "Facture", &updated.ID, "mise a jour de la facture "+updated.Numero)

	ctx.JSON(http.StatusOK, updated)
}

// HandleChangerStatut godoc
// @Summary      Move an invoice through its status lifecycle
// @Description  Allowed transitions: BROUILLON to ENVOYEE or ANNULEE, ENVOYEE
// @Description  to PAYEE or ANNULEE. PAYEE and ANNULEE are terminal.
// @Tags         factures
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Facture ID"
// @Param        request  body      request.ChangerStatutRequest true "request body"
// @Success      200      {object}  domain.Facture
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /factures/{id}/statut [put]
// @Security     BearerAuth
func (h *FactureHandler) HandleChangerStatut(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.ChangerStatutRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.ChangerStatut(ctx.Request.Context(), id, domain.FactureStatut(req.Statut))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFactureNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFactureNotFound))
		case errors.Is(err, service.ErrTransitionStatut), errors.Is(err, service.ErrStatutInvalide):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleChangerStatut -> h.svc.ChangerStatut -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "Facture", &updated.ID,
		fmt.Sprintf("facture %s passee au statut %s", updated.Numero, updated.Statut))

	ctx.JSON(http.StatusOK, updated)
}

// HandleExportFacturePDF godoc
// @Summary      Download an invoice as PDF
// @Tags         factures
// @Produce      application/pdf
// @Param        id   path      int  true  "Facture ID"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /factures/{id}/pdf [get]
// @Security     BearerAuth
func (h *FactureHandler) HandleExportFacturePDF(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	facture, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFactureNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFactureNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleExportFacturePDF -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	var buf bytes.Buffer
	if err := service.FacturePDF(facture, &buf); err != nil {
		err = fmt.Errorf("v1.HandleExportFacturePDF -> service.FacturePDF -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionExport, "Facture", &facture.ID, "export PDF de la facture "+facture.Numero)

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", facture.Numero+".pdf"))
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// HandleDeleteFacture godoc
// @Summary      Delete an invoice
// @Tags         factures
// @Produce      json
// @Param        id   path      int  true  "Facture ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /factures/{id} [delete]
// @Security     BearerAuth
func (h *FactureHandler) HandleDeleteFacture(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFactureNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrFactureNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteFacture -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionDelete, "Facture", &id, "suppression d'une facture")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "facture deleted"})
}
