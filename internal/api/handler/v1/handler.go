package v1

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scolarest/cantine-api/internal/api/handler/v1/request"
	"github.com/scolarest/cantine-api/internal/api/middleware"
	"github.com/scolarest/cantine-api/internal/domain"
)

// Auditor records audit trail entries. Recording is best effort and never
// fails the request being audited.
type Auditor interface {
	Record(ctx context.Context, log domain.ActionLog)
}

// recordAction captures who did what from the request context and hands it to
// the auditor.
func recordAction(ctx *gin.Context, auditor Auditor, action domain.ActionType, model string, objectID *uint, description string) {
	userID := middleware.CtxUserID(ctx)

	entry := domain.ActionLog{
		ActionType:  action,
		ModelName:   model,
		ObjectID:    objectID,
		Description: description,
		IPAddress:   ctx.ClientIP(),
		UserAgent:   ctx.Request.UserAgent(),
	}
	if userID != 0 {
		entry.UserID = &userID
	}

	auditor.Record(ctx.Request.Context(), entry)
}

func pathID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", err)
	}

	return uint(id), nil
}

// queryDate parses an optional date query parameter, defaulting to today.
func queryDate(ctx *gin.Context, name string) (time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return domain.DateOnly(time.Now()), nil
	}

	date, err := time.Parse(request.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return date, nil
}

// queryPeriode parses optional annee and mois query parameters, defaulting to
// the current month.
func queryPeriode(ctx *gin.Context) (int, int, error) {
	now := time.Now()
	annee, mois := now.Year(), int(now.Month())

	if raw := ctx.Query("annee"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid annee: %w", err)
		}
		annee = parsed
	}
	if raw := ctx.Query("mois"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid mois: %w", err)
		}
		mois = parsed
	}

	return annee, mois, nil
}

// queryInt parses an optional integer query parameter, zero when absent.
func queryInt(ctx *gin.Context, name string) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return parsed, nil
}

func queryUint(ctx *gin.Context, name string) (*uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	id := uint(parsed)
	return &id, nil
}

func queryBool(ctx *gin.Context, name string) (*bool, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &parsed, nil
}

// actorID returns a pointer to the authenticated user id for created_by
// columns, nil for unauthenticated requests.
func actorID(ctx *gin.Context) *uint {
	id := middleware.CtxUserID(ctx)
	if id == 0 {
		return nil
	}

	return &id
}
