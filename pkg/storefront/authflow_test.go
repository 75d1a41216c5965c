package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthAPI scripts the two API calls the flow makes and counts them.
type fakeAuthAPI struct {
	token string

	validTokens  map[string]bool
	profileCalls int

	initDataOK    bool
	exchangeCalls int
	issuedToken   string
}

func (f *fakeAuthAPI) SetToken(token string) { f.token = token }

func (f *fakeAuthAPI) GetProfile(ctx context.Context) (*Profile, error) {
	f.profileCalls++
	if f.validTokens[f.token] {
		return &Profile{User: User{ID: 1, FirstName: "Ada"}}, nil
	}
	return nil, &APIError{StatusCode: 401}
}

func (f *fakeAuthAPI) AuthTelegram(ctx context.Context, initData string) (*AuthResponse, error) {
	f.exchangeCalls++
	if !f.initDataOK {
		return nil, &APIError{StatusCode: 401}
	}
	return &AuthResponse{
		Token:   f.issuedToken,
		Profile: Profile{User: User{ID: 1, FirstName: "Ada"}},
	}, nil
}

// countingBridge records how often the identity assertion is read.
type countingBridge struct {
	NoopBridge
	initData      string
	initDataCalls int
}

func (b *countingBridge) InitData() string {
	b.initDataCalls++
	return b.initData
}

func TestAuthenticatePersistedCredentialWinsWithoutOtherSources(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{"stored-token": true}}
	bridge := &countingBridge{initData: "host-payload"}
	session := NewSession(NewMemoryStorage())
	session.SaveToken("stored-token")

	flow := NewAuthFlow(api, session, bridge, "query-token")
	flow.Authenticate(context.Background())

	assert.Equal(t, StatusReady, flow.Status())
	require.NotNil(t, flow.Profile())
	assert.Equal(t, "Ada", flow.Profile().User.FirstName)
	assert.Equal(t, "stored-token", api.token)

	// Later sources must not be consulted once the stored token validates.
	assert.Zero(t, bridge.initDataCalls)
	assert.Zero(t, api.exchangeCalls)
	assert.Equal(t, 1, api.profileCalls)
}

func TestAuthenticateDiscardsInvalidPersistedCredential(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		validTokens: map[string]bool{"fresh-token": true},
		initDataOK:  true,
		issuedToken: "fresh-token",
	}
	bridge := &countingBridge{initData: "host-payload"}
	session := NewSession(NewMemoryStorage())
	session.SaveToken("stale-token")

	flow := NewAuthFlow(api, session, bridge, "")
	flow.Authenticate(context.Background())

	assert.Equal(t, StatusReady, flow.Status())
	assert.Equal(t, 1, api.exchangeCalls)

	// The stale token is gone and the fresh one took its slot.
	stored, ok := session.Token()
	require.True(t, ok)
	assert.Equal(t, "fresh-token", stored)
}

func TestAuthenticateQueryTokenBeatsHostExchange(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{"query-token": true}, initDataOK: true}
	bridge := &countingBridge{initData: "host-payload"}

	flow := NewAuthFlow(api, NewSession(NewMemoryStorage()), bridge, "query-token")
	flow.Authenticate(context.Background())

	assert.Equal(t, StatusReady, flow.Status())
	assert.Zero(t, bridge.initDataCalls)
	assert.Zero(t, api.exchangeCalls)
}

func TestAuthenticateNoSourceEndsInError(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{}}
	flow := NewAuthFlow(api, NewSession(NewMemoryStorage()), NoopBridge{}, "")

	flow.Authenticate(context.Background())

	assert.Equal(t, StatusError, flow.Status())
	assert.NotEmpty(t, flow.ErrorMessage())
	assert.Nil(t, flow.Profile())
}

func TestAuthenticateRejectedExchangeEndsInError(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{}, initDataOK: false}
	bridge := &countingBridge{initData: "tampered-payload"}

	flow := NewAuthFlow(api, NewSession(NewMemoryStorage()), bridge, "")
	flow.Authenticate(context.Background())

	assert.Equal(t, StatusError, flow.Status())
	assert.Equal(t, 1, api.exchangeCalls)
	assert.NotEmpty(t, flow.ErrorMessage())
}

func TestReauthenticateAfterLogout(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		validTokens: map[string]bool{"issued": true},
		initDataOK:  true,
		issuedToken: "issued",
	}
	bridge := &countingBridge{initData: "host-payload"}
	session := NewSession(NewMemoryStorage())

	flow := NewAuthFlow(api, session, bridge, "")
	flow.Authenticate(context.Background())
	require.Equal(t, StatusReady, flow.Status())

	flow.Logout()
	assert.Equal(t, StatusLoading, flow.Status())
	_, ok := session.Token()
	assert.False(t, ok)

	flow.Reauthenticate(context.Background())
	assert.Equal(t, StatusReady, flow.Status())
	assert.Equal(t, 2, api.exchangeCalls)
}

func TestRefreshProfileWithoutTokenIsSilentNoop(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{}}
	flow := NewAuthFlow(api, NewSession(NewMemoryStorage()), NoopBridge{}, "")

	flow.RefreshProfile(context.Background())

	assert.Zero(t, api.profileCalls)
	assert.Equal(t, StatusLoading, flow.Status())
}

func TestRefreshProfileKeepsStatusOnFailure(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{"stored": true}}
	session := NewSession(NewMemoryStorage())
	session.SaveToken("stored")

	flow := NewAuthFlow(api, session, NoopBridge{}, "")
	flow.Authenticate(context.Background())
	require.Equal(t, StatusReady, flow.Status())

	// Invalidate server-side; refresh must fail quietly without a status
	// change.
	api.validTokens = map[string]bool{}
	flow.RefreshProfile(context.Background())

	assert.Equal(t, StatusReady, flow.Status())
	assert.NotNil(t, flow.Profile())
}

func TestRefreshProfileUpdatesProfile(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{"stored": true}}
	session := NewSession(NewMemoryStorage())
	session.SaveToken("stored")

	flow := NewAuthFlow(api, session, NoopBridge{}, "")
	flow.Authenticate(context.Background())
	require.Equal(t, 1, api.profileCalls)

	flow.RefreshProfile(context.Background())
	assert.Equal(t, 2, api.profileCalls)
	assert.Equal(t, StatusReady, flow.Status())
}

func TestAuthFlowNilBridgeDefaultsToNoop(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{validTokens: map[string]bool{}}
	flow := NewAuthFlow(api, NewSession(nil), nil, "")

	flow.Authenticate(context.Background())
	assert.Equal(t, StatusError, flow.Status())
}

var _ error = &APIError{}

func TestAPIErrorMessage(t *testing.T) {
	t.Parallel()

	var err error = &APIError{StatusCode: 503}
	assert.Equal(t, "API error: 503", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.StatusCode)
}
