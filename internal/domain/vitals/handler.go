package vitals

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicq/clinicq/internal/platform/httperr"
	"github.com/clinicq/clinicq/pkg/pagination"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/vitals", h.Create)
	api.GET("/vitals", h.List)
}

func (h *Handler) Create(c echo.Context) error {
	var l Log
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.repo.Create(c.Request().Context(), &l); err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.repo.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
