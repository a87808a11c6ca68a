package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/handler/v1/response"
	"github.com/scolarest/cantine-api/internal/domain"
	"github.com/scolarest/cantine-api/internal/repository"
	"github.com/scolarest/cantine-api/internal/service"
)

type EleveService interface {
	Create(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error)
	Get(ctx context.Context, id uint) (domain.Eleve, error)
	List(ctx context.Context, filter repository.EleveFilter) ([]domain.Eleve, error)
	ListPourMarquage(ctx context.Context, annee, mois int) ([]domain.Eleve, error)
	Update(ctx context.Context, eleve domain.Eleve) (domain.Eleve, error)
	Delete(ctx context.Context, id uint) error
	ImportExcel(ctx context.Context, r io.Reader) (service.ImportResult, error)
	ExportExcel(ctx context.Context, filter repository.EleveFilter, w io.Writer) error
}

type EleveHandler struct {
	svc   EleveService
	audit Auditor
}

func NewEleveHandler(svc EleveService, audit Auditor) *EleveHandler {
	return &EleveHandler{
		svc:   svc,
		audit: audit,
	}
}

func eleveFilterFromQuery(ctx *gin.Context) (repository.EleveFilter, error) {
	classeID, err := queryUint(ctx, "classe_id")
	if err != nil {
		return repository.EleveFilter{}, err
	}
	actif, err := queryBool(ctx, "actif")
	if err != nil {
		return repository.EleveFilter{}, err
	}
	annee, err := queryInt(ctx, "annee")
	if err != nil {
		return repository.EleveFilter{}, err
	}
	moisInscrit, err := queryInt(ctx, "mois_inscrit")
	if err != nil {
		return repository.EleveFilter{}, err
	}
	if moisInscrit != 0 && annee == 0 {
		annee = time.Now().Year()
	}

	return repository.EleveFilter{
		ClasseID:     classeID,
		Actif:        actif,
		Search:       ctx.Query("search"),
		AnneeInscrit: annee,
		MoisInscrit:  moisInscrit,
	}, nil
}

// HandleListEleves godoc
// @Summary      List students
// @Tags         eleves
// @Produce      json
// @Param        classe_id  query     int     false  "filter by class"
// @Param        actif      query     bool    false  "filter by active flag"
// @Param        search     query     string  false  "match on first or last name"
// @Param        annee         query  int  false  "enrollment year, with mois_inscrit"
// @Param        mois_inscrit  query  int  false  "keep students enrolled for this month"
// @Success      200  {array}   domain.Eleve
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /eleves [get]
// @Security     BearerAuth
func (h *EleveHandler) HandleListEleves(ctx *gin.Context) {
	filter, err := eleveFilterFromQuery(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	eleves, err := h.svc.List(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEleves -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, eleves)
}

// HandleListElevesInscrits godoc
// @Summary      List students eligible for meal marking this month
// @Description  Students enrolled for the current month. When no enrollment
// @Description  exists for the month, every active student is eligible.
// @Tags         eleves
// @Produce      json
// @Param        annee  query     int  false  "year, defaults to current"
// @Param        mois   query     int  false  "month, defaults to current"
// @Success      200  {array}   domain.Eleve
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /eleves/inscrits_ce_mois [get]
// @Security     BearerAuth
func (h *EleveHandler) HandleListElevesInscrits(ctx *gin.Context) {
	annee, mois, err := queryPeriode(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	eleves, err := h.svc.ListPourMarquage(ctx.Request.Context(), annee, mois)
	if err != nil {
		err = fmt.Errorf("v1.HandleListElevesInscrits -> h.svc.ListPourMarquage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, eleves)
}

// HandleGetEleve godoc
// @Summary      Get one student
// @Tags         eleves
// @Produce      json
// @Param        id   path      int  true  "Eleve ID"
// @Success      200  {object}  domain.Eleve
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /eleves/{id} [get]
// @Security     BearerAuth
func (h *EleveHandler) HandleGetEleve(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	eleve, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEleveNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEleveNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetEleve -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, eleve)
}

func eleveFromRequest(req request.EleveRequest) (domain.Eleve, error) {
	eleve := domain.Eleve{
		Prenom:          req.Prenom,
		Nom:             req.Nom,
		ClasseID:        req.ClasseID,
		Actif:           true,
		TelephoneParent: req.TelephoneParent,
		EmailParent:     req.EmailParent,
		Photo:           req.Photo,
		Notes:           req.Notes,
	}
	if req.Actif != nil {
		eleve.Actif = *req.Actif
	}
	if req.DateInscription != "" {
		date, err := time.Parse(request.DateLayout, req.DateInscription)
		if err != nil {
			return domain.Eleve{}, fmt.Errorf("invalid date_inscription: %w", err)
		}
		eleve.DateInscription = date
	}

	return eleve, nil
}

// HandleCreateEleve godoc
// @Summary      Create a student
// @Tags         eleves
// @Accept       json
// @Produce      json
// @Param        request  body      request.EleveRequest true "request body"
// @Success      201      {object}  domain.Eleve
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /eleves [post]
// @Security     BearerAuth
func (h *EleveHandler) HandleCreateEleve(ctx *gin.Context) {
	req := request.EleveRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	eleve, err := eleveFromRequest(req)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), eleve)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEleve -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionCreate, "Eleve", &created.ID, "creation de l'eleve "+created.Prenom+" "+created.Nom)

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEleve godoc
// @Summary      Update a student
// @Tags         eleves
// @Accept       json
// @Produce      json
// @Param        id       path      int  true  "Eleve ID"
// @Param        request  body      request.EleveRequest true "request body"
// @Success      200      {object}  domain.Eleve
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /eleves/{id} [put]
// @Security     BearerAuth
func (h *EleveHandler) HandleUpdateEleve(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req := request.EleveRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	eleve, err := eleveFromRequest(req)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	eleve.ID = id

	updated, err := h.svc.Update(ctx.Request.Context(), eleve)
	if err != nil {
		if errors.Is(err, service.ErrEleveNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEleveNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEleve -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionUpdate, "Eleve", &updated.ID, "mise a jour de l'eleve "+updated.Prenom+" "+updated.Nom)

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEleve godoc
// @Summary      Delete a student
// @Tags         eleves
// @Produce      json
// @Param        id   path      int  true  "Eleve ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /eleves/{id} [delete]
// @Security     BearerAuth
func (h *EleveHandler) HandleDeleteEleve(ctx *gin.Context) {
	id, err := pathID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEleveNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEleveNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEleve -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionDelete, "Eleve", &id, "suppression d'un eleve")

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "eleve deleted"})
}

// HandleExportEleves godoc
// @Summary      Export students as a spreadsheet
// @Tags         eleves
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        classe_id  query     int     false  "filter by class"
// @Param        actif      query     bool    false  "filter by active flag"
// @Param        search     query     string  false  "match on first or last name"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /eleves/export [get]
// @Security     BearerAuth
func (h *EleveHandler) HandleExportEleves(ctx *gin.Context) {
	filter, err := eleveFilterFromQuery(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var buf bytes.Buffer
	if err := h.svc.ExportExcel(ctx.Request.Context(), filter, &buf); err != nil {
		err = fmt.Errorf("v1.HandleExportEleves -> h.svc.ExportExcel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionExport, "Eleve", nil, "export des eleves")

	ctx.Header("Content-Disposition", `attachment; filename="eleves.xlsx"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// HandleImportEleves godoc
// @Summary      Import students from a spreadsheet
// @Description  Expects a multipart upload under the "file" field. Rows that
// @Description  cannot be imported are reported without failing the batch.
// @Tags         eleves
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "spreadsheet to import"
// @Success      200   {object}  response.ImportElevesResponse
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Failure      403   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /eleves/import [post]
// @Security     BearerAuth
func (h *EleveHandler) HandleImportEleves(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("missing file: %w", err)))
		return
	}

	f, err := header.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleImportEleves -> header.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer f.Close()

	result, err := h.svc.ImportExcel(ctx.Request.Context(), f)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	recordAction(ctx, h.audit, domain.ActionImport, "Eleve", nil,
		fmt.Sprintf("import de %d eleves", result.Crees))

	ctx.JSON(http.StatusOK, response.ImportElevesResponse{
		Message: "import done",
		Crees:   result.Crees,
		Ignores: result.Ignores,
	})
}
