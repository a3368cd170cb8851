package session

import (
	"encoding/json"
	"errors"
	"time"

	"pizza-text-bot/internal/logger"

	"github.com/allegro/bigcache/v3"
)

// Store keeps sessions as JSON blobs in bigcache, keyed by customer phone.
// The cache life window doubles as the idle session TTL: an abandoned
// conversation simply falls out of cache.
type Store struct {
	cache *bigcache.BigCache
}

func NewStore(ttl time.Duration) *Store {
	cache, err := bigcache.NewBigCache(bigcache.DefaultConfig(ttl))
	if err != nil {
		logger.Crit(err)
	}
	return &Store{cache: cache}
}

// Get returns the session for a phone, creating and persisting a fresh
// IDLE one when the phone was never seen (or its session expired).
func (s *Store) Get(phone string) Session {
	b, err := s.cache.Get(phone)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			logger.Info("No session in cache for " + phone)
		} else {
			logger.Warning("Error while read session from cache", err)
		}

		sess := New(phone)
		if err = s.Save(phone, sess); err != nil {
			logger.Warning("Error while create session", err)
		}
		return sess
	}

	var sess Session
	if err = json.Unmarshal(b, &sess); err != nil {
		logger.Warning("Error while decoding session", err)
		return New(phone)
	}

	return sess
}

func (s *Store) Save(phone string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		logger.Warning("Error while encoding session", err)
		return err
	}

	err = s.cache.Set(phone, data)
	if err != nil {
		logger.Warning("Error while write session to cache", err)
	}

	return err
}

// Reset destroys the session. Resetting an unknown phone is a no-op.
func (s *Store) Reset(phone string) {
	err := s.cache.Delete(phone)
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		logger.Warning("Error while delete session", err)
	}
}

// All returns a snapshot of every live session keyed by phone.
func (s *Store) All() map[string]Session {
	sessions := make(map[string]Session)

	it := s.cache.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			logger.Warning("Error while iterate sessions", err)
			continue
		}

		var sess Session
		if err = json.Unmarshal(entry.Value(), &sess); err != nil {
			logger.Warning("Error while decoding session", err)
			continue
		}
		sessions[entry.Key()] = sess
	}

	return sessions
}
