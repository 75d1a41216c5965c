package storefront

import (
	"context"
	"sync"
)

// Status is the auth flow's externally visible state.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ErrNoEntryLink is the terminal error message shown when no credential
// source yields a session.
const ErrNoEntryLink = "could not sign you in, open the shop again from the bot to get a fresh link"

// AuthAPI is the slice of the API client the auth flow depends on.
type AuthAPI interface {
	SetToken(token string)
	GetProfile(ctx context.Context) (*Profile, error)
	AuthTelegram(ctx context.Context, initData string) (*AuthResponse, error)
}

// AuthFlow resolves a credential on startup and owns the resulting session
// state. Resolution tries, in order: the persisted credential, a token passed
// through the page's query parameters, and finally the host identity
// exchange. The first source that validates wins.
type AuthFlow struct {
	api     AuthAPI
	session *Session
	bridge  HostBridge

	// queryToken is the development bypass credential lifted from the page
	// URL, empty when absent.
	queryToken string

	mu      sync.Mutex
	status  Status
	errMsg  string
	profile *Profile
}

func NewAuthFlow(api AuthAPI, session *Session, bridge HostBridge, queryToken string) *AuthFlow {
	if bridge == nil {
		bridge = NoopBridge{}
	}
	return &AuthFlow{
		api:        api,
		session:    session,
		bridge:     bridge,
		queryToken: queryToken,
		status:     StatusLoading,
	}
}

func (f *AuthFlow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// ErrorMessage is non-empty only in the error state.
func (f *AuthFlow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Profile returns the profile loaded on the last transition into ready.
func (f *AuthFlow) Profile() *Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

// Authenticate runs credential resolution from the top. It is safe to call
// again after a logout or a terminal error; every call restarts at the
// persisted-credential step.
func (f *AuthFlow) Authenticate(ctx context.Context) {
	f.setLoading()

	// 1. Previously persisted credential. A validation failure discards the
	// stored value and falls through; the stored slot is never retried.
	if token, ok := f.session.Token(); ok && token != "" {
		if f.finish(ctx, token) {
			return
		}
		f.session.ClearToken()
	}

	// 2. Development bypass token from the page URL.
	if f.queryToken != "" {
		if f.finish(ctx, f.queryToken) {
			return
		}
	}

	// 3. Host identity exchange.
	if initData := f.bridge.InitData(); initData != "" {
		resp, err := f.api.AuthTelegram(ctx, initData)
		if err == nil && resp.Token != "" {
			f.api.SetToken(resp.Token)
			f.session.SaveToken(resp.Token)
			f.setReady(&resp.Profile)
			return
		}
	}

	f.setError(ErrNoEntryLink)
}

// Reauthenticate is an alias kept for call-site clarity after logout.
func (f *AuthFlow) Reauthenticate(ctx context.Context) {
	f.Authenticate(ctx)
}

// RefreshProfile re-fetches the profile with the held credential. Without a
// credential it does nothing; either way the status is left untouched.
func (f *AuthFlow) RefreshProfile(ctx context.Context) {
	if token, ok := f.session.Token(); !ok || token == "" {
		return
	}
	profile, err := f.api.GetProfile(ctx)
	if err != nil {
		return
	}
	f.mu.Lock()
	f.profile = profile
	f.mu.Unlock()
}

// Logout drops the credential and returns the flow to loading; the caller
// decides whether to Reauthenticate.
func (f *AuthFlow) Logout() {
	f.session.ClearToken()
	f.api.SetToken("")
	f.mu.Lock()
	f.status = StatusLoading
	f.profile = nil
	f.errMsg = ""
	f.mu.Unlock()
}

// finish validates a candidate token by fetching the profile with it. Any
// failure, auth rejection or transport error alike, counts as an invalid
// credential.
func (f *AuthFlow) finish(ctx context.Context, token string) bool {
	f.api.SetToken(token)
	profile, err := f.api.GetProfile(ctx)
	if err != nil {
		f.api.SetToken("")
		return false
	}
	f.session.SaveToken(token)
	f.setReady(profile)
	return true
}

func (f *AuthFlow) setLoading() {
	f.mu.Lock()
	f.status = StatusLoading
	f.errMsg = ""
	f.mu.Unlock()
}

func (f *AuthFlow) setReady(profile *Profile) {
	f.mu.Lock()
	f.status = StatusReady
	f.profile = profile
	f.errMsg = ""
	f.mu.Unlock()
}

func (f *AuthFlow) setError(msg string) {
	f.mu.Lock()
	f.status = StatusError
	f.errMsg = msg
	f.profile = nil
	f.mu.Unlock()
}
