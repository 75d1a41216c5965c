package menu

import (
	"net/http"

	"street-eats/internal/models"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMenu(c echo.Context) error {
	resp, err := h.service.GetMenu(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.GetMenu: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to load menu"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetRegions(c echo.Context) error {
	resp, err := h.service.GetRegions(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.GetRegions: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to load regions"})
	}
	return c.JSON(http.StatusOK, resp)
}
