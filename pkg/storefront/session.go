package storefront

import "sync"

// Storage is the key-value surface the session layer persists into. Embedders
// back it with whatever scope they want the credential to have: an in-memory
// map survives only the current run, a file- or browser-backed implementation
// survives restarts.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Default storage keys. One fixed slot per concern; sessions are not
// multiplexed.
const (
	TokenKey       = "street_eats_token"
	AdminTokenKey  = "street_eats_admin_token"
	LastAddressKey = "street_eats_last_address"
)

// MemoryStorage is a process-lifetime Storage. It is the default scope: a
// credential saved here is gone after restart and the user re-enters through
// the host exchange.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
}

func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// Session wraps a Storage with the fixed customer-credential slot plus the
// small bits of UI state that persist across visits.
type Session struct {
	storage Storage
}

func NewSession(storage Storage) *Session {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Session{storage: storage}
}

// Token returns the persisted customer credential, if any.
func (s *Session) Token() (string, bool) {
	return s.storage.Get(TokenKey)
}

func (s *Session) SaveToken(token string) {
	s.storage.Set(TokenKey, token)
}

// ClearToken removes the persisted credential. Called when a stored token no
// longer validates against the API.
func (s *Session) ClearToken() {
	s.storage.Delete(TokenKey)
}

// LastAddressID remembers the address picked on the previous checkout so the
// form can preselect it.
func (s *Session) LastAddressID() (string, bool) {
	return s.storage.Get(LastAddressKey)
}

func (s *Session) SaveLastAddressID(id string) {
	s.storage.Set(LastAddressKey, id)
}

// AdminSession holds the operator credential in its own slot, fully separate
// from the customer one.
type AdminSession struct {
	storage Storage
}

func NewAdminSession(storage Storage) *AdminSession {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &AdminSession{storage: storage}
}

func (s *AdminSession) Token() (string, bool) {
	return s.storage.Get(AdminTokenKey)
}

func (s *AdminSession) SaveToken(token string) {
	s.storage.Set(AdminTokenKey, token)
}

func (s *AdminSession) Logout() {
	s.storage.Delete(AdminTokenKey)
}
