package medication

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medications/availability/:medication", h.availability)
	api.GET("/medications/details/:medication", h.details)
}

func (h *Handler) availability(c echo.Context) error {
	name := c.Param("medication")
	if name == "" {
		return apperr.New(apperr.KindValidation, "medication name is required")
	}

	a, ok := h.catalog.Availability(name)
	if !ok {
		return apperr.New(apperr.KindNotFound, "medication not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) details(c echo.Context) error {
	name := c.Param("medication")
	if name == "" {
		return apperr.New(apperr.KindValidation, "medication name is required")
	}
	return c.JSON(http.StatusOK, h.catalog.Details(name))
}
