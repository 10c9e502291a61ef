package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Kerubo0/Rafiki/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:ctx:"

// RedisStore keeps sessions as JSON blobs with a TTL refreshed on activity.
// A keyed in-process mutex serializes the read-merge-write of concurrent
// turns on the same session; the lock is never held across external calls.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	locks  sync.Map // sessionID -> *sync.Mutex
}

// NewRedisStore wraps a Redis client as a session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) lock(sessionID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *RedisStore) Create(ctx context.Context) (*models.Session, error) {
	sess := newSession()
	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Activity extends the session's life.
	s.client.Expire(ctx, sessionKeyPrefix+sessionID, s.ttl)
	return sess, nil
}

func (s *RedisStore) Update(ctx context.Context, sessionID string, fn func(*models.Session)) (*models.Session, error) {
	mu := s.lock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.read(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// Aborted request: do not persist a partial update.
		return nil, err
	}
	fn(sess)
	sess.LastActivity = time.Now().UTC()
	if err := s.write(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	deleted, err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return err
	}
	s.locks.Delete(sessionID)
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) read(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	if sess.Entities == nil {
		sess.Entities = map[string]any{}
	}
	return &sess, nil
}

func (s *RedisStore) write(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.SessionID, b, s.ttl).Err()
}
