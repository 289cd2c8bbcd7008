package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/core"
)

type AppError struct {
	ErrorStack   error
	ErrorMessage string
	ErrorDetails map[string]string
}

func (app *application) badRequestResponse(c *gin.Context, appError *AppError) {
	if appError.ErrorMessage == "" {
		appError.ErrorMessage = "The request could not be processed."
	}
	app.errorResponse(c, http.StatusBadRequest, appError)
}

func (app *application) notFoundResponse(c *gin.Context, message string) {
	app.errorResponse(c, http.StatusNotFound, &AppError{ErrorMessage: message})
}

func (app *application) methodNotAllowedResponse(c *gin.Context) {
	app.errorResponse(c, http.StatusMethodNotAllowed, &AppError{
		ErrorMessage: "The " + c.Request.Method + " method is not supported for this resource.",
	})
}

func (app *application) conflictResponse(c *gin.Context, err error) {
	app.errorResponse(c, http.StatusConflict, &AppError{
		ErrorStack:   err,
		ErrorMessage: "The resource conflicts with an existing record.",
	})
}

func (app *application) internalErrorResponse(c *gin.Context, err error) {
	app.errorResponse(c, http.StatusInternalServerError, &AppError{
		ErrorStack:   err,
		ErrorMessage: "An internal server error occurred.",
	})
}

func (app *application) serviceUnavailableResponse(c *gin.Context, err error) {
	app.errorResponse(c, http.StatusServiceUnavailable, &AppError{
		ErrorStack:   err,
		ErrorMessage: "The service is currently unavailable.",
	})
}

// serviceErrorResponse maps an error returned by a service call to a response.
func (app *application) serviceErrorResponse(c *gin.Context, err error) {
	var notFound *core.NotFoundError
	switch {
	case errors.As(err, &notFound):
		app.notFoundResponse(c, notFound.Message)
	case errors.Is(err, core.NoRecordFound):
		app.notFoundResponse(c, "The requested resource could not be found.")
	case core.IsUniqueViolation(err):
		app.conflictResponse(c, err)
	default:
		app.internalErrorResponse(c, err)
	}
}

func (app *application) errorResponse(c *gin.Context, status int, appError *AppError) {
	errorDetails := gin.H{
		"errorMessage": appError.ErrorMessage,
		"errorDetails": appError.ErrorDetails,
	}

	var attrs []slog.Attr
	attrs = append(attrs, slog.String("request_url", c.Request.URL.String()))
	attrs = append(attrs, slog.String("request_method", c.Request.Method))
	attrs = append(attrs, slog.Int("status", status))
	if appError.ErrorStack != nil {
		attrs = append(attrs, slog.String("stack", xerrors.Sprint(appError.ErrorStack)))
	}

	for key, valueData := range appError.ErrorDetails {
		attrs = append(attrs, slog.Any(key, valueData))
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	app.logger.LogAttrs(c.Request.Context(), level, "Error in handling request", attrs...)

	c.AbortWithStatusJSON(status, errorDetails)
}
