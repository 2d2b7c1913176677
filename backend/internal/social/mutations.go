package social

import (
	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Mutation Operations
// ============================================================================

// CreatePost builds a post dated by the engine clock and appends it to the
// author's posts. Field contents are not validated here.
func (e *Engine) CreatePost(author, title, topic, content string) (Post, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.byName[author]
	if !ok {
		return Post{}, apperrors.NewNotFound("user", author)
	}

	p := &postRecord{
		id:      e.newID(),
		author:  u.name,
		title:   title,
		topic:   topic,
		content: content,
		date:    e.clock(),
	}
	e.posts[p.id] = p
	u.posts = append(u.posts, p.id)
	return p.snapshot(), nil
}

// CreateComment builds a comment dated by the engine clock and appends it to
// the post's comments.
func (e *Engine) CreateComment(author, postID, content string) (Comment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.byName[author]
	if !ok {
		return Comment{}, apperrors.NewNotFound("user", author)
	}
	p, ok := e.posts[postID]
	if !ok {
		return Comment{}, apperrors.NewNotFound("post", postID)
	}

	c := Comment{
		ID:      e.newID(),
		PostID:  p.id,
		Author:  u.name,
		Content: content,
		Date:    e.clock(),
	}
	p.comments = append(p.comments, c)
	return c, nil
}

// LikePost records that user likes the post. Liking twice is a no-op; the
// returned bool reports whether the like was new.
func (e *Engine) LikePost(postID, user string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.posts[postID]
	if !ok {
		return false, apperrors.NewNotFound("post", postID)
	}
	if _, ok := e.byName[user]; !ok {
		return false, apperrors.NewNotFound("user", user)
	}

	if p.likedBy(user) {
		return false, nil
	}
	p.likes = append(p.likes, user)
	return true, nil
}

// AddFriend links two users in both directions. Self-friendship and existing
// friendships are no-ops; the returned bool reports whether a link was made.
func (e *Engine) AddFriend(a, b string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ua, ok := e.byName[a]
	if !ok {
		return false, apperrors.NewNotFound("user", a)
	}
	ub, ok := e.byName[b]
	if !ok {
		return false, apperrors.NewNotFound("user", b)
	}

	if ua == ub || ua.hasFriend(ub.name) {
		return false, nil
	}
	ua.friends = append(ua.friends, ub.name)
	ub.friends = append(ub.friends, ua.name)
	return true, nil
}
