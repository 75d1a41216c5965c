package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"street-eats/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	registered []models.BotRegisterRequest
}

func (s *stubUserService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return nil, models.ErrNotFound
}

func (s *stubUserService) RegisterFromBot(ctx context.Context, req models.BotRegisterRequest) (*models.User, error) {
	s.registered = append(s.registered, req)
	return &models.User{ID: 1, TelegramID: req.TelegramID, Phone: req.Phone}, nil
}

func performBotRegister(t *testing.T, svc ServiceInterface, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bot/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewHandler(svc).RegisterFromBot(c))
	return rec
}

func TestRegisterFromBotSuccess(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{}
	rec := performBotRegister(t, svc, `{
		"telegram_id": 777,
		"phone": "+995555123456",
		"first_name": "Ada",
		"location": {"latitude": 41.7151, "longitude": 44.8271}
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.registered, 1)
	assert.Equal(t, int64(777), svc.registered[0].TelegramID)
	assert.Contains(t, rec.Body.String(), `"telegram_id":777`)
}

func TestRegisterFromBotMissingPhone(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{}
	rec := performBotRegister(t, svc, `{
		"telegram_id": 777,
		"location": {"latitude": 41.7, "longitude": 44.8}
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.registered)
}

func TestRegisterFromBotMissingLocation(t *testing.T) {
	t.Parallel()

	svc := &stubUserService{}
	rec := performBotRegister(t, svc, `{"telegram_id": 777, "phone": "+995555123456"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.registered)
}
