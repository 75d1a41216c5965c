package users

import (
	"errors"
	"net/http"

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

// GetMyProfile returns the authenticated user's profile with addresses.
func (h *Handler) GetMyProfile(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: err.Error()})
	}

	profile, err := h.service.GetProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User profile not found"})
		}
		c.Logger().Error("Handler.GetMyProfile: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to retrieve profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

// RegisterFromBot handles POST /bot/register. The companion bot calls this
// after the customer shares their phone contact and location.
func (h *Handler) RegisterFromBot(c echo.Context) error {
	var req models.BotRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "telegram_id, phone and location are required"})
	}

	user, err := h.service.RegisterFromBot(c.Request().Context(), req)
	if err != nil {
		c.Logger().Error("Handler.RegisterFromBot: ", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to register user"})
	}
	return c.JSON(http.StatusOK, user)
}
