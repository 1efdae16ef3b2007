package httpapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"horse.fit/translator/internal/clock"
	"horse.fit/translator/internal/payloadschema"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service":  "translator",
		"provider": s.translator.ProviderName(),
		"time":     clock.UTC(),
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	return c.JSON(http.StatusOK, s.translator.Catalog().List())
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		// BodyLimit reports oversized bodies through the read error.
		return err
	}

	req, err := payloadschema.DecodeTranslateRequest(body)
	if err != nil {
		return failInvalidRequest(c, "Request body must be a JSON object with string fields text, source_language, target_language and context")
	}

	result, err := s.translator.Translate(c.Request().Context(), req)
	if err != nil {
		return failTranslation(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
