package social

import (
	"strings"

	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Directory Operations
// ============================================================================

// RegisterUser adds a user with no friends and no posts to the end of the
// registry.
func (e *Engine) RegisterUser(name string) (User, error) {
	if strings.TrimSpace(name) == "" {
		return User{}, apperrors.NewBlankField("name")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byName[name]; exists {
		return User{}, apperrors.NewDuplicateName(name)
	}

	u := &userRecord{name: name}
	e.users = append(e.users, u)
	e.byName[name] = u
	return u.snapshot(), nil
}

// FindUserByName returns the user registered under name.
func (e *Engine) FindUserByName(name string) (User, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	u, ok := e.byName[name]
	if !ok {
		return User{}, false
	}
	return u.snapshot(), true
}

// Users returns every registered user in registration order.
func (e *Engine) Users() []User {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]User, 0, len(e.users))
	for _, u := range e.users {
		out = append(out, u.snapshot())
	}
	return out
}

// UserCount returns the number of registered users.
func (e *Engine) UserCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.users)
}

// Posts returns the feed: every post in registry order, then insertion order.
// Indices into this slice are what PostAt accepts.
func (e *Engine) Posts() []Post {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshots(e.flattenLocked())
}

// PostAt returns the post at index in the feed.
func (e *Engine) PostAt(index int) (Post, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	all := e.flattenLocked()
	if index < 0 || index >= len(all) {
		return Post{}, apperrors.NewIndexOutOfRange(index, len(all))
	}
	return all[index].snapshot(), nil
}

// Post looks a post up by ID.
func (e *Engine) Post(id string) (Post, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.posts[id]
	if !ok {
		return Post{}, false
	}
	return p.snapshot(), true
}

// Comments returns the comments of a post in creation order.
func (e *Engine) Comments(postID string) ([]Comment, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.posts[postID]
	if !ok {
		return nil, apperrors.NewNotFound("post", postID)
	}
	return append([]Comment{}, p.comments...), nil
}

func snapshots(records []*postRecord) []Post {
	out := make([]Post, 0, len(records))
	for _, p := range records {
		out = append(out, p.snapshot())
	}
	return out
}
