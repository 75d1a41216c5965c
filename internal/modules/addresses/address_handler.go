package addresses

import (
	"errors"
	"net/http"
	"strconv"

	"street-eats/internal/models"
	"street-eats/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service  ServiceInterface
	validate *validator.Validate
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

func (h *Handler) ListMyAddresses(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	list, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.ListMyAddresses: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to load addresses"})
	}
	if list == nil {
		list = []models.Address{}
	}
	return c.JSON(http.StatusOK, models.AddressesResponse{Addresses: list})
}

func (h *Handler) AddAddress(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	var req models.AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	addr, err := h.service.Create(c.Request().Context(), userID, req)
	if err != nil {
		c.Logger().Error("Handler.AddAddress: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create address"})
	}
	return c.JSON(http.StatusCreated, addr)
}

func (h *Handler) UpdateAddress(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	addressID, err := strconv.ParseInt(c.Param("addressId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid address id"})
	}

	var req models.AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	addr, err := h.service.Update(c.Request().Context(), addressID, userID, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Address not found"})
		}
		c.Logger().Error("Handler.UpdateAddress: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update address"})
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *Handler) DeleteAddress(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	addressID, err := strconv.ParseInt(c.Param("addressId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid address id"})
	}

	if err := h.service.Delete(c.Request().Context(), addressID, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Address not found"})
		}
		c.Logger().Error("Handler.DeleteAddress: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete address"})
	}
	return c.NoContent(http.StatusNoContent)
}
