package auth

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
)

// SessionStore keeps authenticated sessions in process memory. Tokens
// are opaque; nothing about the user can be derived from one. Sessions
// vanish at expiry, logout, or process end.
type SessionStore struct {
	cache *gocache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (s *SessionStore) Create(user model.User) *model.Session {
	sess := &model.Session{
		Token:     uuid.NewString(),
		User:      user,
		StartedAt: time.Now(),
	}
	s.cache.SetDefault(sess.Token, sess)
	return sess
}

func (s *SessionStore) Get(token string) (*model.Session, bool) {
	v, ok := s.cache.Get(token)
	if !ok {
		return nil, false
	}
	return v.(*model.Session), true
}

func (s *SessionStore) Destroy(token string) {
	s.cache.Delete(token)
}
