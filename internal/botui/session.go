package botui

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
)

const defaultSessionCapacity = 1024

// Session is what a bot remembers about one chat between updates: the
// API user id and the locale, so most updates skip two API round trips.
type Session struct {
	UserID int64
	Locale locales.Locale
}

// Sessions is a bounded per-chat cache. Eviction only costs the next
// update a re-fetch, so a fixed capacity is safe.
type Sessions struct {
	cache *lru.Cache[int64, Session]
}

// NewSessions builds the cache; capacity <= 0 selects the default.
func NewSessions(capacity int) (*Sessions, error) {
	if capacity <= 0 {
		capacity = defaultSessionCapacity
	}
	cache, err := lru.New[int64, Session](capacity)
	if err != nil {
		return nil, fmt.Errorf("botui: create session cache: %w", err)
	}
	return &Sessions{cache: cache}, nil
}

func (s *Sessions) Get(chatID int64) (Session, bool) {
	return s.cache.Get(chatID)
}

func (s *Sessions) Put(chatID int64, session Session) {
	s.cache.Add(chatID, session)
}

// SetLocale updates the cached locale in place, keeping the user id.
func (s *Sessions) SetLocale(chatID int64, locale locales.Locale) {
	session, ok := s.cache.Get(chatID)
	if !ok {
		session = Session{}
	}
	session.Locale = locale
	s.cache.Add(chatID, session)
}

func (s *Sessions) Forget(chatID int64) {
	s.cache.Remove(chatID)
}
