package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	uuid "github.com/satori/go.uuid"
)

type memorySessions struct {
	mu     sync.RWMutex
	boards map[uuid.UUID]boardState
}

func newMemorySessions() *memorySessions {
	return &memorySessions{boards: make(map[uuid.UUID]boardState)}
}

func (s *memorySessions) Load(ctx context.Context, id uuid.UUID) (boardState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[id]
	return board, ok, nil
}

func (s *memorySessions) Store(ctx context.Context, id uuid.UUID, board boardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[id] = board
	return nil
}

func (s *memorySessions) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, id)
	return nil
}

func (s *memorySessions) Close() error { return nil }

// redisSessions keeps boards under session:<id>, expiring after ttl without a
// move.
type redisSessions struct {
	rdb *redis.Client
	ttl time.Duration
}

func openRedisSessions(ctx context.Context, url string, ttl time.Duration) (*redisSessions, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return newRedisSessions(rdb, ttl), nil
}

func newRedisSessions(rdb *redis.Client, ttl time.Duration) *redisSessions {
	return &redisSessions{rdb: rdb, ttl: ttl}
}

func (s *redisSessions) key(id uuid.UUID) string { return "session:" + id.String() }

func (s *redisSessions) Load(ctx context.Context, id uuid.UUID) (boardState, bool, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return boardState{}, false, nil
	}
	if err != nil {
		return boardState{}, false, err
	}
	board, err := parseBoardState(raw)
	if err != nil {
		return boardState{}, false, err
	}
	return board, true, nil
}

func (s *redisSessions) Store(ctx context.Context, id uuid.UUID, board boardState) error {
	return s.rdb.Set(ctx, s.key(id), board.String(), s.ttl).Err()
}

func (s *redisSessions) Remove(ctx context.Context, id uuid.UUID) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

func (s *redisSessions) Close() error {
	return s.rdb.Close()
}
