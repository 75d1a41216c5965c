package admin

import (
	"errors"
	"net/http"
	"strconv"

	"street-eats/internal/models"

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

func (h *Handler) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Username and password required"})
	}

	token, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid username or password"})
		}
		c.Logger().Error("Handler.Login: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to log in"})
	}
	return c.JSON(http.StatusOK, models.AdminLoginResponse{Token: token})
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	cat, err := h.service.CreateCategory(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateCategory: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create category"})
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid category id"})
	}

	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	cat, err := h.service.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Category not found"})
		}
		c.Logger().Error("Handler.UpdateCategory: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update category"})
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid category id"})
	}

	if err := h.service.DeleteCategory(c.Request().Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Category not found"})
		}
		c.Logger().Error("Handler.DeleteCategory: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete category"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateProduct(c echo.Context) error {
	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	p, err := h.service.CreateProduct(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateProduct: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create product"})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid product id"})
	}

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	p, err := h.service.UpdateProduct(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		}
		c.Logger().Error("Handler.UpdateProduct: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update product"})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid product id"})
	}

	if err := h.service.DeleteProduct(c.Request().Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		}
		c.Logger().Error("Handler.DeleteProduct: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete product"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateRegion(c echo.Context) error {
	var req models.RegionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	reg, err := h.service.CreateRegion(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.CreateRegion: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create region"})
	}
	return c.JSON(http.StatusCreated, reg)
}

func (h *Handler) UpdateRegion(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("regionId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid region id"})
	}

	var req models.RegionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	reg, err := h.service.UpdateRegion(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Region not found"})
		}
		c.Logger().Error("Handler.UpdateRegion: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update region"})
	}
	return c.JSON(http.StatusOK, reg)
}

func (h *Handler) DeleteRegion(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("regionId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid region id"})
	}

	if err := h.service.DeleteRegion(c.Request().Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Region not found"})
		}
		c.Logger().Error("Handler.DeleteRegion: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete region"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetAllOrders(c echo.Context) error {
	list, err := h.service.ListOrders(c.Request().Context())
	if err != nil {
		c.Logger().Error("Handler.GetAllOrders: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to load orders"})
	}
	if list == nil {
		list = []models.Order{}
	}
	return c.JSON(http.StatusOK, map[string][]models.Order{"orders": list})
}

func (h *Handler) SetOrderStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid order id"})
	}

	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Validation failed: " + err.Error()})
	}

	order, err := h.service.UpdateOrderStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidOrderStatus):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		case errors.Is(err, models.ErrNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Order not found"})
		}
		c.Logger().Error("Handler.SetOrderStatus: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update order"})
	}
	return c.JSON(http.StatusOK, order)
}
