package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/app/middleware"
	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// ErrorResponse documents the failure envelope
type ErrorResponse struct {
	Code    int         `json:"code" example:"102000"`
	Message string      `json:"message" example:"Property not found"`
	Data    interface{} `json:"data"`
}

// respondError maps a service error onto the response envelope. notFound is the
// code used when the addressed document does not exist.
func respondError(ctx *gin.Context, err error, notFound int) {
	switch {
	case errors.Is(err, services.ErrValidationSkipped):
		Logger.Warning("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		response.NotWritten(ctx, services.MissingFields(err))
	case errors.Is(err, docstore.ErrNotFound):
		response.Fail(ctx, notFound, nil)
	case errors.Is(err, docstore.ErrStoreUnavailable):
		Logger.Error("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		response.Fail(ctx, code.ErrDatabase, nil)
	case errors.Is(err, services.ErrInvalidInput):
		response.FailWithMessage(ctx, code.ErrValidation, err.Error(), apperror.CustomValidationError(err))
	case errors.Is(err, services.ErrNoPhoneNumber):
		response.Fail(ctx, code.ErrNoPhoneNumber, nil)
	case errors.Is(err, services.ErrAuthFailed):
		response.Fail(ctx, code.ErrAuthFailed, nil)
	case errors.Is(err, services.ErrSessionInvalid):
		response.Fail(ctx, code.ErrTokenInvalid, nil)
	case errors.Is(err, services.ErrUserExists):
		response.Fail(ctx, code.ErrUserAlreadyExist, nil)
	default:
		Logger.Error("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		response.ServerError(ctx)
	}
}

// referenceDate reads ?date=YYYY-MM-DD, defaulting to now
func referenceDate(ctx *gin.Context) (time.Time, bool) {
	raw := ctx.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		response.ParamError(ctx, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d.Time, true
}

// queryInt reads an integer query parameter
func queryInt(ctx *gin.Context, name string, def int) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.ParamError(ctx, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func currentUser(ctx *gin.Context) models.Identity {
	identity, _ := middleware.CurrentIdentity(ctx)
	return identity
}
