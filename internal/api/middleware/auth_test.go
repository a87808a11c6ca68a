package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/pkg/jwthelper"
)

const testSigningKey = "cle-de-test"

func newProtectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{NewAuthenticator(testSigningKey).VerifyJWT()}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": CtxUserID(ctx)})
	})

	router.GET("/protege", handlers...)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, token, userAgent string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protege", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", userAgent)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestVerifyJWT(t *testing.T) {
	router := newProtectedRouter()

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "curl/8.0")
	require.NoError(t, err)

	rec := doRequest(t, router, token, "curl/8.0")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestVerifyJWTSansToken(t *testing.T) {
	router := newProtectedRouter()

	rec := doRequest(t, router, "", "curl/8.0")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyJWTMauvaiseCle(t *testing.T) {
	router := newProtectedRouter()

	token, err := jwthelper.GenerateToken([]byte("autre-cle"), 42, "curl/8.0")
	require.NoError(t, err)

	rec := doRequest(t, router, token, "curl/8.0")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyJWTAutreUserAgent(t *testing.T) {
	router := newProtectedRouter()

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "curl/8.0")
	require.NoError(t, err)

	// A token replayed from an other client is refused.
	rec := doRequest(t, router, token, "Mozilla/5.0")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeResolver struct {
	actors map[uint]domain.Actor
}

func (r fakeResolver) ResolveActor(_ context.Context, userID uint) (domain.Actor, error) {
	return r.actors[userID], nil
}

func TestActorGate(t *testing.T) {
	resolver := fakeResolver{actors: map[uint]domain.Actor{
		1: {Profil: &domain.ProfilPrestataire{Role: domain.RoleAdmin, Actif: true}},
		2: {Profil: &domain.ProfilPrestataire{Role: domain.RolePrestataire, Actif: true}},
		3: {Profil: &domain.ProfilPrestataire{Role: domain.RolePrestataire, Actif: false}},
		4: {},
	}}
	gate := NewActorGate(resolver)

	tests := []struct {
		name   string
		guard  gin.HandlerFunc
		userID uint
		code   int
	}{
		{"profil requis, admin", gate.RequireProfile(), 1, http.StatusOK},
		{"profil requis, inactif", gate.RequireProfile(), 3, http.StatusOK},
		{"profil requis, sans profil", gate.RequireProfile(), 4, http.StatusForbidden},
		{"prestataire requis, prestataire", gate.RequirePrestataire(), 2, http.StatusOK},
		{"prestataire requis, admin", gate.RequirePrestataire(), 1, http.StatusOK},
		{"prestataire requis, inactif", gate.RequirePrestataire(), 3, http.StatusForbidden},
		{"admin requis, admin", gate.RequireAdmin(), 1, http.StatusOK},
		{"admin requis, prestataire", gate.RequireAdmin(), 2, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProtectedRouter(tt.guard)

			token, err := jwthelper.GenerateToken([]byte(testSigningKey), tt.userID, "curl/8.0")
			require.NoError(t, err)

			rec := doRequest(t, router, token, "curl/8.0")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
