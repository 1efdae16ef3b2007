package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"horse.fit/translator/internal/translation"
)

type errorResponse struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func failure(c echo.Context, status int, kind, detail string) error {
	return c.JSON(status, errorResponse{
		Status: status,
		Detail: detail,
		Error:  kind,
	})
}

func failInvalidRequest(c echo.Context, detail string) error {
	return failure(c, http.StatusBadRequest, "invalid_request", detail)
}

// failTranslation renders a translation failure. Only *translation.Error details
// reach the client; anything else is reported as an internal error.
func failTranslation(c echo.Context, err error) error {
	var te *translation.Error
	if !errors.As(err, &te) {
		return failure(c, http.StatusInternalServerError, "internal", "Internal server error")
	}
	return failure(c, statusForTranslationError(err), translation.KindName(err), te.Detail)
}

func statusForTranslationError(err error) int {
	switch {
	case errors.Is(err, translation.ErrEmptyInput), errors.Is(err, translation.ErrUnknownLanguage):
		return http.StatusBadRequest
	case errors.Is(err, translation.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, translation.ErrMalformedResponse):
		return http.StatusBadGateway
	case translation.IsTimeout(err):
		return http.StatusGatewayTimeout
	case errors.Is(err, translation.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
