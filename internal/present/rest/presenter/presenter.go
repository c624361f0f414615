package presenter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"

	"github.com/totegamma/todolist/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// OKWithETag answers 304 when the client already holds the same body.
func OKWithETag(c echo.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return InternalError(c, err)
	}

	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// SeeOther sends the browser back to location after a successful POST.
func SeeOther(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}

func BadRequest(c echo.Context, err error) error {
	logClientError(c, http.StatusBadRequest, err.Error())
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	logClientError(c, http.StatusBadRequest, msg)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	logClientError(c, http.StatusNotFound, msg)
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(
		c.Request().Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("path", c.Path()),
		slog.String("module", "rest"),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// Error picks the status for err from the domain error types.
func Error(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return BadRequest(c, err)
	default:
		return InternalError(c, err)
	}
}

func logClientError(c echo.Context, status int, msg string) {
	slog.InfoContext(
		c.Request().Context(), http.StatusText(status),
		slog.String("error", msg),
		slog.String("path", c.Path()),
		slog.String("module", "rest"),
	)
}
