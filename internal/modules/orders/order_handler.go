package orders

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

func (h *Handler) CreateOrder(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.service.Create(c.Request().Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRegionUnavailable),
			errors.Is(err, models.ErrAddressNotOwned),
			errors.Is(err, models.ErrProductUnavailable),
			errors.Is(err, models.ErrEmptyOrder):
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.CreateOrder: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create order"})
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListMyOrders(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	list, err := h.service.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error("Handler.ListMyOrders: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to load orders"})
	}
	if list == nil {
		list = []models.Order{}
	}
	return c.JSON(http.StatusOK, map[string][]models.Order{"orders": list})
}

func (h *Handler) GetOrderDetails(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid order id"})
	}

	order, err := h.service.GetOrderDetails(c.Request().Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		c.Logger().Error("Handler.GetOrderDetails: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to load order"})
	}
	return c.JSON(http.StatusOK, order)
}
