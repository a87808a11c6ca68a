package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/service"
)

type RechercheService interface {
	Globale(ctx context.Context, query string) (service.Recherche, error)
}

type RechercheHandler struct {
	svc RechercheService
}

func NewRechercheHandler(svc RechercheService) *RechercheHandler {
	return &RechercheHandler{
		svc: svc,
	}
}

// HandleRecherche godoc
// @Summary      Search students, menus and invoices at once
// @Tags         recherche
// @Produce      json
// @Param        q    query     string  true  "search terms"
// @Success      200  {object}  service.Recherche
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /recherche [get]
// @Security     BearerAuth
func (h *RechercheHandler) HandleRecherche(ctx *gin.Context) {
	resultats, err := h.svc.Globale(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleRecherche -> h.svc.Globale -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, resultats)
}
