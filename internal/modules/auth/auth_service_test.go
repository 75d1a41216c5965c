package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"street-eats/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:test-bot-token"

type fakeUserRepo struct {
	upserted *models.UpsertTelegramUserInput
}

func (f *fakeUserRepo) FindByID(ctx context.Context, userID int64) (*models.User, error) {
	return &models.User{ID: userID, TelegramID: 777}, nil
}

func (f *fakeUserRepo) UpsertTelegramUser(ctx context.Context, input models.UpsertTelegramUserInput) (*models.User, error) {
	f.upserted = &input
	return &models.User{
		ID:         42,
		TelegramID: input.TelegramID,
		FirstName:  input.FirstName,
		Username:   input.Username,
	}, nil
}

type fakeProfileService struct{}

func (fakeProfileService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return &models.Profile{
		User:      &models.User{ID: userID, TelegramID: 777},
		Addresses: []models.Address{},
	}, nil
}

func (fakeProfileService) RegisterFromBot(ctx context.Context, req models.BotRegisterRequest) (*models.User, error) {
	return &models.User{ID: 1, TelegramID: req.TelegramID}, nil
}

// signInitData produces a payload signed the way the Telegram client signs
// its WebApp initData.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	pairs := make([]string, 0, len(fields))
	for k, v := range fields {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(pairs, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func validInitData(t *testing.T) string {
	t.Helper()
	return signInitData(t, testBotToken, map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
		"user":      `{"id":777,"first_name":"Ada","username":"ada_l","language_code":"en"}`,
	})
}

func newTestService(repo *fakeUserRepo) *Service {
	return NewService(repo, fakeProfileService{}, testBotToken, "jwt-secret", time.Hour, time.Hour)
}

func TestAuthenticateValidInitData(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{}
	svc := newTestService(repo)

	resp, err := svc.Authenticate(context.Background(), validInitData(t))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(777), repo.upserted.TelegramID)
	assert.Equal(t, "Ada", repo.upserted.FirstName)
	assert.Equal(t, "ada_l", repo.upserted.Username)
	assert.Equal(t, "en", repo.upserted.Language)

	require.NotNil(t, resp.Profile)
	assert.Equal(t, int64(777), resp.Profile.User.TelegramID)
}

func TestAuthenticateIssuesUserRoleClaims(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeUserRepo{})
	resp, err := svc.Authenticate(context.Background(), validInitData(t))
	require.NoError(t, err)

	claims := &models.JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (any, error) {
		return []byte("jwt-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(777), claims.TelegramID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestAuthenticateTamperedHash(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeUserRepo{})

	initData := validInitData(t)
	values, err := url.ParseQuery(initData)
	require.NoError(t, err)
	values.Set("hash", strings.Repeat("0", 64))

	_, err = svc.Authenticate(context.Background(), values.Encode())
	assert.ErrorIs(t, err, models.ErrInvalidInitData)
}

func TestAuthenticateTamperedUserPayload(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeUserRepo{})

	initData := validInitData(t)
	values, err := url.ParseQuery(initData)
	require.NoError(t, err)
	// Swap the user id without re-signing.
	values.Set("user", `{"id":999,"first_name":"Eve"}`)

	_, err = svc.Authenticate(context.Background(), values.Encode())
	assert.ErrorIs(t, err, models.ErrInvalidInitData)
}

func TestAuthenticateExpiredAuthDate(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeUserRepo{})

	stale := time.Now().Add(-2 * time.Hour).Unix()
	initData := signInitData(t, testBotToken, map[string]string{
		"auth_date": strconv.FormatInt(stale, 10),
		"user":      `{"id":777,"first_name":"Ada"}`,
	})

	_, err := svc.Authenticate(context.Background(), initData)
	assert.ErrorIs(t, err, models.ErrExpiredInitData)
}

func TestAuthenticateMissingUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeUserRepo{})

	initData := signInitData(t, testBotToken, map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
	})

	_, err := svc.Authenticate(context.Background(), initData)
	assert.ErrorIs(t, err, models.ErrInvalidInitData)
}

func TestAuthenticateMissingHash(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeUserRepo{})

	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("user", `{"id":777}`)

	_, err := svc.Authenticate(context.Background(), values.Encode())
	assert.ErrorIs(t, err, models.ErrInvalidInitData)
}

func TestAuthenticateWrongBotToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeUserRepo{})

	initData := signInitData(t, "67890:other-bot", map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":777,"first_name":"Ada"}`,
	})

	_, err := svc.Authenticate(context.Background(), initData)
	assert.ErrorIs(t, err, models.ErrInvalidInitData)
}

func TestBuildDataCheckStringSortsAndSkipsHash(t *testing.T) {
	t.Parallel()

	values := url.Values{}
	values.Set("user", `{"id":1}`)
	values.Set("auth_date", "100")
	values.Set("hash", "deadbeef")
	values.Set("query_id", "abc")

	got := buildDataCheckString(values)
	want := fmt.Sprintf("auth_date=100\nquery_id=abc\nuser=%s", `{"id":1}`)
	assert.Equal(t, want, got)
}
