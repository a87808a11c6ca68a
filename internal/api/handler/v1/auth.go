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
	"github.com/scolarest/cantine-api/internal/config"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/pkg/jwthelper"
	"github.com/scolarest/cantine-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Actor, error)
	CreateActor(ctx context.Context, user domain.User, profil domain.ProfilPrestataire) (domain.ProfilPrestataire, error)
	ResolveActor(ctx context.Context, userID uint) (domain.Actor, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
}

type AuthHandler struct {
	conf  *config.APIConfig
	svc   AuthService
	audit Auditor
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, audit Auditor) *AuthHandler {
	return &AuthHandler{
		conf:  conf,
		svc:   svc,
		audit: audit,
	}
}

// HandleLogin godoc
// @Summary      Login with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest true "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	actor, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}
		if errors.Is(err, service.ErrProfilInactif) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), actor.User.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.audit.Record(ctx.Request.Context(), domain.ActionLog{
		UserID:      &actor.User.ID,
		ActionType:  domain.ActionLogin,
		ModelName:   "User",
		ObjectID:    &actor.User.ID,
		Description: "connexion de " + actor.User.Username,
		IPAddress:   ctx.ClientIP(),
		UserAgent:   ctx.Request.UserAgent(),
	})

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:  token,
		User:   actor.User,
		Profil: actor.Profil,
	})
}

// HandleRefresh godoc
// @Summary      Issue a fresh token for the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.TokenResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/refresh [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleRefresh(ctx *gin.Context) {
	userID := middleware.CtxUserID(ctx)

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), userID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleRefresh -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TokenResponse{Token: token})
}

// HandleRegister godoc
// @Summary      Create a user account with its canteen profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateActorRequest true "request body"
// @Success      201      {object}  domain.ProfilPrestataire
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/register [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	req := request.CreateActorRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user := domain.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Prenom:   req.Prenom,
		Nom:      req.Nom,
	}
	profil := domain.ProfilPrestataire{
		Role:       domain.Role(req.Role),
		Telephone:  req.Telephone,
		Entreprise: req.Entreprise,
		Actif:      true,
	}

	created, err := h.svc.CreateActor(ctx.Request.Context(), user, profil)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}
		if errors.Is(err, service.ErrRoleInvalide) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.CreateActor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "ProfilPrestataire", &created.ID, "creation du compte "+created.User.Username)

	ctx.JSON(http.StatusCreated, created)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/change_password [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleChangePassword(ctx *gin.Context) {
	req := request.ChangePasswordRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID := middleware.CtxUserID(ctx)
	if err := h.svc.ChangePassword(ctx.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "User", &userID, "changement de mot de passe")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "password updated"})
}
