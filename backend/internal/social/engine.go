// Package social holds the in-memory social graph: the user registry, the
// posts and comments reachable from it, and the analytics computed over it.
package social

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock supplies creation dates for posts and comments.
type Clock func() string

// SystemClock reports the current UTC day.
func SystemClock() string {
	return time.Now().UTC().Format("2006-01-02")
}

// FixedClock always reports date.
func FixedClock(date string) Clock {
	return func() string { return date }
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the date source used by CreatePost and CreateComment.
func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithIDGenerator replaces the UUID generator for post and comment IDs.
func WithIDGenerator(next func() string) Option {
	return func(e *Engine) {
		if next != nil {
			e.newID = next
		}
	}
}

// Engine owns the registry. Users are kept in registration order and every
// post and comment is reachable only through its author's post list.
//
// Mutations take the write lock; lookups and analytics take the read lock.
type Engine struct {
	mu     sync.RWMutex
	users  []*userRecord
	byName map[string]*userRecord
	posts  map[string]*postRecord
	clock  Clock
	newID  func() string
}

// NewEngine creates an empty registry.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		byName: make(map[string]*userRecord),
		posts:  make(map[string]*postRecord),
		clock:  SystemClock,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// flattenLocked lists posts in registry order, then each author's insertion
// order. Callers must hold e.mu.
func (e *Engine) flattenLocked() []*postRecord {
	var all []*postRecord
	for _, u := range e.users {
		for _, id := range u.posts {
			all = append(all, e.posts[id])
		}
	}
	return all
}
