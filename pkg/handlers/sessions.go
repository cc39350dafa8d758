package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"mars-gallery/pkg/store"
)

// SessionCookie is the cookie carrying a browser's session id
const SessionCookie = "mars_session"

// Sessions keeps one store per browser. A session expires after ttl without requests.
type Sessions struct {
	stores *cache.Cache
	ttl    time.Duration
}

// NewSessions creates an empty session table
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		stores: cache.New(ttl, 2*ttl),
		ttl:    ttl,
	}
}

// Get returns the store of the requesting browser, starting a new session
// when the cookie is missing or expired. Every request pushes the expiry of
// both the store and the cookie ttl into the future.
func (s *Sessions) Get(w http.ResponseWriter, r *http.Request) *store.Store {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if cached, found := s.stores.Get(cookie.Value); found {
			st := cached.(*store.Store)
			s.stores.Set(cookie.Value, st, cache.DefaultExpiration)
			s.setCookie(w, cookie.Value)
			return st
		}
	}

	id := newSessionID()
	st := store.New()
	s.stores.Set(id, st, cache.DefaultExpiration)
	log.Printf("Started session %s", id[:8])

	s.setCookie(w, id)
	return st
}

func (s *Sessions) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Count returns the number of live sessions
func (s *Sessions) Count() int {
	return s.stores.ItemCount()
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
