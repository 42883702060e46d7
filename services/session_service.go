package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"opentrivia/models"
	"opentrivia/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Session lifetimes. Explicitly created sessions live longer than sessions
// created implicitly by a first filtered query carrying an unknown token.
const (
	ExplicitSessionTTL = 24 * time.Hour
	ImplicitSessionTTL = 6 * time.Hour
)

type SessionService struct {
	store store.Store
	redis *redis.Client

	// tokens whose Redis mirror could not be refreshed or dropped; a dirty
	// mirror must never be trusted, or an outdated exclusion set would
	// re-serve questions the database already recorded
	mu    sync.Mutex
	dirty map[string]bool
}

// NewSessionService returns a session service backed by st. rdb is optional;
// when nil the exclusion-set cache is disabled and every lookup hits the
// database.
func NewSessionService(st store.Store, rdb *redis.Client) *SessionService {
	return &SessionService{
		store: st,
		redis: rdb,
		dirty: make(map[string]bool),
	}
}

// CreateSession issues a fresh token with an empty served history.
func (s *SessionService) CreateSession() (*models.SessionToken, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(ExplicitSessionTTL)

	session, err := s.store.CreateSessionToken(token, []string{}, expiresAt)
	if err != nil {
		return nil, err
	}

	s.cacheServedIDs(token, session.ServedIDs, expiresAt)
	return session, nil
}

// GetExclusionSet returns the question IDs already served to token. An
// unknown or expired token yields an empty set, not an error, and no record
// is created.
func (s *SessionService) GetExclusionSet(token string) ([]string, error) {
	if ids, ok := s.cachedServedIDs(token); ok {
		return ids, nil
	}

	session, err := s.store.FindSessionByToken(token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.cacheServedIDs(token, session.ServedIDs, session.ExpiresAt)
	return session.ServedIDs, nil
}

// AppendServed records ids against token, creating the session on the fly if
// the record vanished or never existed. Implicitly created sessions get the
// shorter TTL.
func (s *SessionService) AppendServed(token string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	session, err := s.store.AppendServedIDs(token, ids)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session, err = s.store.CreateSessionToken(token, ids, time.Now().Add(ImplicitSessionTTL))
	}
	if err != nil {
		return err
	}

	s.cacheServedIDs(token, session.ServedIDs, session.ExpiresAt)
	return nil
}

func sessionKey(token string) string {
	return "session:" + token
}

// cachedServedIDs reads the Redis mirror of a session's served set. Any cache
// problem is treated as a miss so the database stays the source of truth. A
// token marked dirty stays on the database path until its stale key has been
// dropped.
func (s *SessionService) cachedServedIDs(token string) ([]string, bool) {
	if s.redis == nil {
		return nil, false
	}

	if s.isDirty(token) {
		if err := s.redis.Del(context.Background(), sessionKey(token)).Err(); err != nil {
			return nil, false
		}
		s.clearDirty(token)
		return nil, false
	}

	data, err := s.redis.Get(context.Background(), sessionKey(token)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("failed to read session cache", "token", token, "error", err)
		}
		return nil, false
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		slog.Warn("corrupt session cache entry", "token", token, "error", err)
		return nil, false
	}
	return ids, true
}

func (s *SessionService) cacheServedIDs(token string, ids []string, expiresAt time.Time) {
	if s.redis == nil {
		return
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		s.dropCachedServedIDs(token)
		return
	}
	if err := s.redis.Set(context.Background(), sessionKey(token), data, ttl).Err(); err != nil {
		slog.Warn("failed to update session cache", "token", token, "error", err)
		s.dropCachedServedIDs(token)
		return
	}
	s.clearDirty(token)
}

// dropCachedServedIDs removes a mirror entry that no longer reflects the
// database. If the delete itself fails the token is marked dirty so reads
// keep bypassing the cache until the key is gone.
func (s *SessionService) dropCachedServedIDs(token string) {
	if err := s.redis.Del(context.Background(), sessionKey(token)).Err(); err != nil && err != redis.Nil {
		slog.Warn("failed to drop session cache entry", "token", token, "error", err)
		s.markDirty(token)
		return
	}
	s.clearDirty(token)
}

func (s *SessionService) isDirty(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty[token]
}

func (s *SessionService) markDirty(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty[token] = true
}

func (s *SessionService) clearDirty(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dirty, token)
}
