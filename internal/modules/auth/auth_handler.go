package auth

import (
	"errors"
	"net/http"

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

// AuthenticateTelegram exchanges Telegram initData for a token and profile.
func (h *Handler) AuthenticateTelegram(c echo.Context) error {
	var req models.TelegramAuthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "init_data is required"})
	}

	result, err := h.service.Authenticate(c.Request().Context(), req.InitData)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInitData) || errors.Is(err, models.ErrExpiredInitData) {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
		}
		c.Logger().Error("Handler.AuthenticateTelegram: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to authenticate"})
	}

	return c.JSON(http.StatusOK, result)
}
