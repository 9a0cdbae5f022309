package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/funval/hs-dashboard/pkg/config"
)

const keyPrefix = "session:"

// Data is everything the dashboard remembers about a login: the backend
// bearer token and the canonical role name. Written at login, cleared at
// logout or when the backend answers 401. No expiry tracking beyond the
// record TTL; invalidation is detected reactively.
type Data struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Store keeps session records in Redis keyed by an opaque cookie value, the
// server-side counterpart of the SPA's localStorage pair.
type Store struct {
	rdb *redis.Client
	cfg config.SessionConfig
}

// NewStore creates a session store.
func NewStore(rdb *redis.Client, cfg config.SessionConfig) *Store {
	if cfg.CookieName == "" {
		cfg.CookieName = "funval_session"
	}
	return &Store{rdb: rdb, cfg: cfg}
}

// Create persists a new session record and sets the cookie. Both fields are
// written in one record so no partial state is ever visible.
func (s *Store) Create(c *gin.Context, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	if err := s.rdb.Set(c.Request.Context(), keyPrefix+id, payload, s.cfg.TTL).Err(); err != nil {
		return err
	}

	s.setCookie(c, id, int(s.cfg.TTL.Seconds()))
	return nil
}

// Get loads the session for the request cookie. A missing or expired record
// means logged out and returns (nil, nil); only transport failures error. The
// record TTL is refreshed on every hit so active sessions stay alive.
func (s *Store) Get(c *gin.Context) (*Data, error) {
	id, err := c.Cookie(s.cfg.CookieName)
	if err != nil || id == "" {
		return nil, nil
	}

	raw, err := s.rdb.Get(c.Request.Context(), keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data.Token == "" {
		// A record without a token is treated as logged out regardless of role.
		return nil, nil
	}

	_ = s.rdb.Expire(c.Request.Context(), keyPrefix+id, s.cfg.TTL).Err()
	return &data, nil
}

// Clear removes the session record and expires the cookie.
func (s *Store) Clear(c *gin.Context) error {
	id, err := c.Cookie(s.cfg.CookieName)
	if err == nil && id != "" {
		if delErr := s.rdb.Del(c.Request.Context(), keyPrefix+id).Err(); delErr != nil {
			s.setCookie(c, "", -1)
			return delErr
		}
	}

	s.setCookie(c, "", -1)
	return nil
}

func (s *Store) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, value, maxAge, "/", "", s.cfg.CookieSecure, true)
}
