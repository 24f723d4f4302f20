package api

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userhub/dashboard-api/internal/core/domain"
)

// errorEnvelope is the canonical error response for all API failures.
// Err and Stack are populated only outside production.
type errorEnvelope struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	ErrorSources []domain.ErrorSource `json:"errorSources"`
	Err          string               `json:"err,omitempty"`
	Stack        string               `json:"stack,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps the
// closed domain error taxonomy onto HTTP statuses, logs unexpected
// errors, and renders the standard envelope. The taxonomy is matched
// deliberately via domain.KindOf; no error-shape sniffing.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, sources := resolveError(err, log, c)

		resp := errorEnvelope{
			Success:      false,
			Message:      msg,
			ErrorSources: sources,
		}
		if sources == nil {
			resp.ErrorSources = []domain.ErrorSource{}
		}
		if !production {
			resp.Err = err.Error()
			resp.Stack = string(debug.Stack())
		}

		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []domain.ErrorSource) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	var sources []domain.ErrorSource
	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
		sources = de.Sources
	}

	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindBadRequest:
		return http.StatusBadRequest, msg, sources
	case domain.KindUnauthorized:
		return http.StatusUnauthorized, msg, nil
	case domain.KindForbidden:
		return http.StatusForbidden, msg, nil
	case domain.KindNotFound:
		return http.StatusNotFound, msg, nil
	case domain.KindConflict:
		return http.StatusConflict, msg, nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong", nil
}
