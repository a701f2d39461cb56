// Package session keeps wizard states between HTTP requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"winhouse-quote/internal/wizard"
)

var ErrNotFound = errors.New("SESSION_NOT_FOUND")

// Store persists wizard states by session id. Concurrent saves to the same
// id are last-writer-wins.
type Store interface {
	Create(ctx context.Context) (string, wizard.State, error)
	Load(ctx context.Context, id string) (wizard.State, error)
	Save(ctx context.Context, id string, state wizard.State) error
	Delete(ctx context.Context, id string) error
}

type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	newID  func() string
}

type RedisOption func(*RedisStore)

// WithIDGenerator replaces uuid.NewString for new session ids.
func WithIDGenerator(newID func() string) RedisOption {
	return func(s *RedisStore) { s.newID = newID }
}

// NewRedisStore stores each session under prefix+id. Every save renews the
// ttl; a zero ttl keeps sessions forever.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Create(ctx context.Context) (string, wizard.State, error) {
	id := s.newID()
	state := wizard.InitialState()
	if err := s.Save(ctx, id, state); err != nil {
		return "", wizard.State{}, err
	}
	return id, state, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (wizard.State, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return wizard.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return wizard.State{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	state, err := wizard.Unmarshal(data)
	if err != nil {
		return wizard.State{}, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, state wizard.State) error {
	data, err := wizard.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
