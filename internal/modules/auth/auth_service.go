package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"street-eats/internal/models"
	"street-eats/internal/modules/users"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceInterface defines the Telegram WebApp authentication contract.
type ServiceInterface interface {
	Authenticate(ctx context.Context, initData string) (*models.AuthResponse, error)
}

// Service verifies Telegram initData, upserts the user, and issues a JWT.
// The returned AuthResponse bundles the token with a fresh profile so the
// mini-app finishes its bootstrap in one round trip.
type Service struct {
	userRepo    users.RepositoryInterface
	profiles    users.ServiceInterface
	botToken    string
	jwtSecret   []byte
	jwtExpiry   time.Duration
	initDataTTL time.Duration
}

func NewService(userRepo users.RepositoryInterface, profiles users.ServiceInterface, botToken, jwtSecret string, jwtExpiry, initDataTTL time.Duration) *Service {
	if jwtExpiry <= 0 {
		jwtExpiry = 24 * time.Hour
	}
	if initDataTTL <= 0 {
		initDataTTL = time.Hour
	}
	return &Service{
		userRepo:    userRepo,
		profiles:    profiles,
		botToken:    botToken,
		jwtSecret:   []byte(jwtSecret),
		jwtExpiry:   jwtExpiry,
		initDataTTL: initDataTTL,
	}
}

// telegramUserPayload mirrors the user JSON chunk embedded inside initData.
type telegramUserPayload struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	PhoneNumber  string `json:"phone_number"`
}

// Authenticate validates the host-asserted identity string and exchanges it
// for a bearer token plus profile.
func (s *Service) Authenticate(ctx context.Context, initData string) (*models.AuthResponse, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, models.ErrInvalidInitData
	}

	if err := s.verifyPayload(values); err != nil {
		return nil, err
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, models.ErrInvalidInitData
	}

	var tgUser telegramUserPayload
	if err := json.Unmarshal([]byte(userJSON), &tgUser); err != nil {
		return nil, models.ErrInvalidInitData
	}

	user, err := s.userRepo.UpsertTelegramUser(ctx, models.UpsertTelegramUserInput{
		TelegramID: tgUser.ID,
		FirstName:  tgUser.FirstName,
		LastName:   tgUser.LastName,
		Username:   tgUser.Username,
		Phone:      tgUser.PhoneNumber,
		Language:   tgUser.LanguageCode,
	})
	if err != nil {
		return nil, fmt.Errorf("service.Authenticate: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("service.Authenticate: sign token: %w", err)
	}

	profile, err := s.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("service.Authenticate: load profile: %w", err)
	}

	return &models.AuthResponse{Token: token, Profile: profile}, nil
}

// verifyPayload checks the HMAC signature Telegram attaches to initData:
// HMAC-SHA256 over the sorted key=value lines, keyed by SHA256(bot token).
func (s *Service) verifyPayload(values url.Values) error {
	hash := values.Get("hash")
	if hash == "" {
		return models.ErrInvalidInitData
	}

	authDateStr := values.Get("auth_date")
	if authDateStr == "" {
		return models.ErrInvalidInitData
	}
	authUnix, err := strconv.ParseInt(authDateStr, 10, 64)
	if err != nil {
		return models.ErrInvalidInitData
	}
	if time.Since(time.Unix(authUnix, 0)) > s.initDataTTL {
		return models.ErrExpiredInitData
	}

	secret := sha256.Sum256([]byte(s.botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(buildDataCheckString(values)))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(hash)) {
		return models.ErrInvalidInitData
	}
	return nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:     user.ID,
		TelegramID: user.TelegramID,
		Role:       models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func buildDataCheckString(values url.Values) string {
	pairs := make([]string, 0, len(values))
	for key, vals := range values {
		if key == "hash" || len(vals) == 0 {
			continue
		}
		pairs = append(pairs, key+"="+vals[0])
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\n")
}
