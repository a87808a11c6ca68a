package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/api/middleware"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/service"
)

type ProfilService interface {
	MonProfil(ctx context.Context, userID uint) (domain.ProfilPrestataire, error)
	Get(ctx context.Context, id uint) (domain.ProfilPrestataire, error)
	List(ctx context.Context, role domain.Role, actif *bool) ([]domain.ProfilPrestataire, error)
	Update(ctx context.Context, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error)
	Delete(ctx context.Context, id uint) error
	TableauDeBord(ctx context.Context) (service.Dashboard, error)
}

type ProfilHandler struct {
	svc   ProfilService
	audit Auditor
}

func NewProfilHandler(svc ProfilService, audit Auditor) *ProfilHandler {
	return &ProfilHandler{
		svc:   svc,
		audit: audit,
	}
}

// HandleMonProfil godoc
// @Summary      Get the authenticated user's profile
// @Tags         profil
// @Produce      json
// @Success      200  {object}  domain.ProfilPrestataire
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /profil/mon_profil [get]
// @Security     BearerAuth
func (h *ProfilHandler) HandleMonProfil(ctx *gin.Context) {
	profil, err := h.svc.MonProfil(ctx.Request.Context(), middleware.CtxUserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrProfilNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrProfilNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleMonProfil -> h.svc.MonProfil -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profil)
}

// HandleDashboard godoc
// @Summary      Get the dashboard snapshot
// @Description  Live counters: active students, today's and this month's
// @Description  meals, enrollments, invoice amounts and today's menu.
// @Tags         profil
// @Produce      json
// @Success      200  {object}  service.Dashboard
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /profil/dashboard [get]
// @Security     BearerAuth
func (h *ProfilHandler) HandleDashboard(ctx *gin.Context) {
	dashboard, err := h.svc.TableauDeBord(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.TableauDeBord -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleListPrestataires godoc
// @Summary      List canteen profiles
// @Tags         prestataires
// @Produce      json
// @Param        role   query     string  false  "filter by role"
// @Param        actif  query     bool    false  "filter by active flag"
// @Success      200  {array}   domain.ProfilPrestataire
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /prestataires [get]
// @Security     BearerAuth
func (h *ProfilHandler) HandleListPrestataires(ctx *gin.Context) {
	actif, err := queryBool(ctx, "actif")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profils, err := h.svc.List(ctx.Request.Context(), domain.Role(ctx.Query("role")), actif)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPrestataires -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profils)
}

// HandleGetPrestataire godoc
// @Summary      Get one canteen profile
// @Tags         prestataires
// @Produce      json
// @Param        id   path      int  true  "Profil ID"
// @Success      200  {object}  domain.ProfilPrestataire
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /prestataires/{id} [get]
// @Security     BearerAuth
func (h *ProfilHandler) HandleGetPrestataire(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	profil, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProfilNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrProfilNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetPrestataire -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, profil)
}

// HandleUpdatePrestataire godoc
// @Summary      Update a canteen profile
// @Description  Deactivating a profile locks the account out without deleting
// @Description  its history.
// @Tags         prestataires
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Profil ID"
// @Param        request  body      request.UpdateProfilRequest true "request body"
// @Success      200      {object}  domain.ProfilPrestataire
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /prestataires/{id} [put]
// @Security     BearerAuth
func (h *ProfilHandler) HandleUpdatePrestataire(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.UpdateProfilRequest{}
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
		if errors.Is(err, service.ErrProfilNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrProfilNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePrestataire -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	current.Role = domain.Role(req.Role)
	current.Telephone = req.Telephone
	current.Entreprise = req.Entreprise
	if req.Actif != nil {
		current.Actif = *req.Actif
	}

	updated, err := h.svc.Update(ctx.Request.Context(), current)
	if err != nil {
		if errors.Is(err, service.ErrRoleInvalide) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePrestataire -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "ProfilPrestataire", &updated.ID,
		"mise a jour du profil "+updated.User.Username)

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeletePrestataire godoc
// @Summary      Delete a canteen profile and its account
// @Tags         prestataires
// @Produce      json
// @Param        id   path      int  true  "Profil ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /prestataires/{id} [delete]
// @Security     BearerAuth
func (h *ProfilHandler) HandleDeletePrestataire(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProfilNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrProfilNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeletePrestataire -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionDelete, "ProfilPrestataire", &id, "suppression d'un profil prestataire")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "profil deleted"})
}
