package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string           `json:"detail"`
	Kind   domain.ErrorKind `json:"kind"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidInput, domain.KindUnsupportedExport:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders facade errors as ErrorResponse. Errors raised by echo
// itself (unknown route, wrong method) keep their status.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := renderError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	} else {
		logger.Debug("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if err := c.JSON(status, body); err != nil {
		logger.Warn("write error response: %v", err)
	}
}

func renderError(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) && !isDomainError(err) {
		kind := domain.KindInternal
		switch he.Code {
		case http.StatusNotFound:
			kind = domain.KindNotFound
		case http.StatusBadRequest:
			kind = domain.KindInvalidInput
		}
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok && msg != "" {
			detail = msg
		}
		return he.Code, ErrorResponse{Detail: detail, Kind: kind}
	}

	kind := domain.KindOf(err)
	return StatusFor(kind), ErrorResponse{Detail: err.Error(), Kind: kind}
}

func isDomainError(err error) bool {
	return domain.KindOf(err) != domain.KindInternal
}
