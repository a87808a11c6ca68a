package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/domain"
)

// CtxKeyActor is the gin context key holding the resolved domain.Actor.
const CtxKeyActor = "actor"

var (
	errNoProfile       = errors.New("no canteen profile attached to this account")
	errPrestataireOnly = errors.New("reserved for active providers and administrators")
	errAdminOnly       = errors.New("reserved for administrators")
)

type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uint) (domain.Actor, error)
}

// ActorGate resolves the authenticated user into a domain.Actor and guards
// routes on its role. It must run after VerifyJWT.
type ActorGate struct {
	resolver ActorResolver
}

func NewActorGate(resolver ActorResolver) *ActorGate {
	return &ActorGate{
		resolver: resolver,
	}
}

// RequireProfile admits any actor carrying a canteen profile.
func (g *ActorGate) RequireProfile() gin.HandlerFunc {
	return g.require(domain.Actor.HasProfile, errNoProfile)
}

// RequirePrestataire admits active providers and administrators.
func (g *ActorGate) RequirePrestataire() gin.HandlerFunc {
	return g.require(domain.Actor.IsPrestataireOrAdmin, errPrestataireOnly)
}

// RequireAdmin admits active administrators only.
func (g *ActorGate) RequireAdmin() gin.HandlerFunc {
	return g.require(domain.Actor.IsAdmin, errAdminOnly)
}

func (g *ActorGate) require(allowed func(domain.Actor) bool, denied error) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, err := g.resolver.ResolveActor(ctx.Request.Context(), CtxUserID(ctx))
		if err != nil {
			err = fmt.Errorf("middleware.require -> g.resolver.ResolveActor -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		if !allowed(actor) {
			response.RenderErr(ctx, response.ErrPermissionDenied(denied))
			return
		}

		ctx.Set(CtxKeyActor, actor)
		ctx.Next()
	}
}

// CtxActor returns the actor set by an ActorGate middleware.
func CtxActor(ctx *gin.Context) domain.Actor {
	actor, _ := ctx.Value(CtxKeyActor).(domain.Actor)
	return actor
}
