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
	"github.com/scolarest/cantine-api/internal/service"
)

type ClasseService interface {
	Create(ctx context.Context, classe domain.Classe) (domain.Classe, error)
	Get(ctx context.Context, id uint) (domain.Classe, error)
	List(ctx context.Context) ([]domain.Classe, error)
	Update(ctx context.Context, classe domain.Classe) (domain.Classe, error)
	Delete(ctx context.Context, id uint) error
}

type ClasseHandler struct {
	svc   ClasseService
	audit Auditor
}

func NewClasseHandler(svc ClasseService, audit Auditor) *ClasseHandler {
	return &ClasseHandler{
		svc:   svc,
		audit: audit,
	}
}

// HandleListClasses godoc
// @Summary      List all classes
// @Tags         classes
// @Produce      json
// @Success      200  {array}   domain.Classe
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes [get]
// @Security     BearerAuth
func (h *ClasseHandler) HandleListClasses(ctx *gin.Context) {
	classes, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListClasses -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, classes)
}

// HandleGetClasse godoc
// @Summary      Get one class
// @Tags         classes
// @Produce      json
// @Param        id   path      int  true  "Classe ID"
// @Success      200  {object}  domain.Classe
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{id} [get]
// @Security     BearerAuth
func (h *ClasseHandler) HandleGetClasse(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	classe, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClasseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrClasseNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetClasse -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, classe)
}

// HandleCreateClasse godoc
// @Summary      Create a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        request  body      request.ClasseRequest true "request body"
// @Success      201      {object}  domain.Classe
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /classes [post]
// @Security     BearerAuth
func (h *ClasseHandler) HandleCreateClasse(ctx *gin.Context) {
	req := request.ClasseRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), domain.Classe{
		Nom:    req.Nom,
		Niveau: req.Niveau,
	})
	if err != nil {
		if errors.Is(err, service.ErrClasseExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateClasse -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Classe", &created.ID, "creation de la classe "+created.Nom)

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateClasse godoc
// @Summary      Update a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Classe ID"
// @Param        request  body      request.ClasseRequest true "request body"
// @Success      200      {object}  domain.Classe
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /classes/{id} [put]
// @Security     BearerAuth
func (h *ClasseHandler) HandleUpdateClasse(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.ClasseRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.Update(ctx.Request.Context(), domain.Classe{
		ID:     id,
		Nom:    req.Nom,
		Niveau: req.Niveau,
	})
	if err != nil {
		if errors.Is(err, service.ErrClasseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrClasseNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateClasse -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "Classe", &updated.ID, "mise a jour de la classe "+updated.Nom)

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteClasse godoc
// @Summary      Delete a class
// @Tags         classes
// @Produce      json
// @Param        id   path      int  true  "Classe ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /classes/{id} [delete]
// @Security     BearerAuth
func (h *ClasseHandler) HandleDeleteClasse(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrClasseNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrClasseNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteClasse -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionDelete, "Classe", &id, "suppression d'une classe")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "classe deleted"})
}
