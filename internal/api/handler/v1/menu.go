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

type MenuService interface {
	Create(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	Get(ctx context.Context, id uint) (domain.Menu, error)
	Aujourdhui(ctx context.Context) (domain.Menu, error)
	List(ctx context.Context, filter repository.MenuFilter) ([]domain.Menu, error)
	Mois(ctx context.Context, annee, mois int) ([]domain.Menu, error)
	Calendrier(ctx context.Context, annee, mois int) ([]service.CalendrierJour, error)
	Update(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	Delete(ctx context.Context, id uint) error
}

type MenuHandler struct {
	svc   MenuService
	audit Auditor
}

func NewMenuHandler(svc MenuService, audit Auditor) *MenuHandler {
	return &MenuHandler{
		svc:   svc,
		audit: audit,
	}
}

// HandleListMenus godoc
// @Summary      List menus
// @Tags         menus
// @Produce      json
// @Param        search  query     string  false  "match on dishes"
// @Success      200  {array}   domain.Menu
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menus [get]
// @Security     BearerAuth
func (h *MenuHandler) HandleListMenus(ctx *gin.Context) {
	menus, err := h.svc.List(ctx.Request.Context(), repository.MenuFilter{
		Search: ctx.Query("search"),
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleListMenus -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, menus)
}

// HandleGetMenuDuJour godoc
// @Summary      Get today's menu
// @Tags         menus
// @Produce      json
// @Success      200  {object}  domain.Menu
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menus/aujourdhui [get]
// @Security     BearerAuth
func (h *MenuHandler) HandleGetMenuDuJour(ctx *gin.Context) {
	menu, err := h.svc.Aujourdhui(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMenuNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMenuDuJour -> h.svc.Aujourdhui -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, menu)
}

// HandleListMenusDuMois godoc
// @Summary      List the menus of a month
// @Tags         menus
// @Produce      json
// @Param        annee  query     int  false  "year, defaults to current"
// @Param        mois   query     int  false  "month, defaults to current"
// @Success      200  {array}   domain.Menu
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menus/mois [get]
// @Security     BearerAuth
func (h *MenuHandler) HandleListMenusDuMois(ctx *gin.Context) {
	annee, mois, err := queryPeriode(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	menus, err := h.svc.Mois(ctx.Request.Context(), annee, mois)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMenusDuMois -> h.svc.Mois -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, menus)
}

// HandleGetCalendrier godoc
// @Summary      Get the monthly menu calendar
// @Description  Returns a 6-week grid starting on Monday, each cell carrying
// @Description  the menu planned for that day if any.
// @Tags         menus
// @Produce      json
// @Param        annee  query     int  false  "year, defaults to current"
// @Param        mois   query     int  false  "month, defaults to current"
// @Success      200  {array}   service.CalendrierJour
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menus/calendrier [get]
// @Security     BearerAuth
func (h *MenuHandler) HandleGetCalendrier(ctx *gin.Context) {
	annee, mois, err := queryPeriode(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	jours, err := h.svc.Calendrier(ctx.Request.Context(), annee, mois)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCalendrier -> h.svc.Calendrier -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, jours)
}

// HandleGetMenu godoc
// @Summary      Get one menu
// @Tags         menus
// @Produce      json
// @Param        id   path      int  true  "Menu ID"
// @Success      200  {object}  domain.Menu
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menus/{id} [get]
// @Security     BearerAuth
func (h *MenuHandler) HandleGetMenu(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	menu, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMenuNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMenu -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, menu)
}

func menuFromRequest(req request.MenuRequest) (domain.Menu, error) {
	date, err := time.Parse(request.DateLayout, req.Date)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("invalid date: %w", err)
	}

	menu := domain.Menu{
		Date:           date,
		PlatPrincipal:  req.PlatPrincipal,
		Accompagnement: req.Accompagnement,
		Dessert:        req.Dessert,
		Image:          req.Image,
		Disponible:     true,
		Notes:          req.Notes,
	}
	if req.Disponible != nil {
		menu.Disponible = *req.Disponible
	}

	return menu, nil
}

// HandleCreateMenu godoc
// @Summary      Create a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Param        request  body      request.MenuRequest true "request body"
// @Success      201      {object}  domain.Menu
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /menus [post]
// @Security     BearerAuth
func (h *MenuHandler) HandleCreateMenu(ctx *gin.Context) {
	req := request.MenuRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	menu, err := menuFromRequest(req)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), menu)
	if err != nil {
		if errors.Is(err, service.ErrMenuExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateMenu -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Menu", &created.ID, "creation du menu du "+req.Date)

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateMenu godoc
// @Summary      Update a menu
// @Tags         menus
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Menu ID"
// @Param        request  body      request.MenuRequest true "request body"
// @Success      200      {object}  domain.Menu
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /menus/{id} [put]
// @Security     BearerAuth
func (h *MenuHandler) HandleUpdateMenu(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.MenuRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	menu, err := menuFromRequest(req)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	menu.ID = id

	updated, err := h.svc.Update(ctx.Request.Context(), menu)
	if err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMenuNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateMenu -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "Menu", &updated.ID, "mise a jour du menu du "+req.Date)

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteMenu godoc
// @Summary      Delete a menu
// @Tags         menus
// @Produce      json
// @Param        id   path      int  true  "Menu ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /menus/{id} [delete]
// @Security     BearerAuth
func (h *MenuHandler) HandleDeleteMenu(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMenuNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMenuNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteMenu -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionDelete, "Menu", &id, "suppression d'un menu")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "menu deleted"})
}
