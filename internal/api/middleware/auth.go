package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/pkg/jwthelper"
)

// CtxKeyUserID is the gin context key holding the authenticated user id.
const CtxKeyUserID = "userID"

var errMissingToken = errors.New("missing bearer token")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token. The token is also
// bound to the user agent it was issued for.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}
		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Next()
	}
}

// CtxUserID returns the authenticated user id set by VerifyJWT.
func CtxUserID(ctx *gin.Context) uint {
	id, _ := ctx.Value(CtxKeyUserID).(uint)
	return id
}
