package social

import (
	"context"
	"time"

	"socialgraph/backend/pkg/logger"

	"go.uber.org/zap"
)

// Mirror receives every successful graph mutation. Implementations copy the
// change somewhere else; the engine stays the source of truth.
type Mirror interface {
	UserRegistered(ctx context.Context, user User) error
	FriendshipAdded(ctx context.Context, a, b string) error
	PostCreated(ctx context.Context, post Post) error
	PostLiked(ctx context.Context, postID, user string) error
	CommentCreated(ctx context.Context, comment Comment) error
}

// NopMirror discards every notification.
type NopMirror struct{}

func (NopMirror) UserRegistered(context.Context, User) error           { return nil }
func (NopMirror) FriendshipAdded(context.Context, string, string) error { return nil }
func (NopMirror) PostCreated(context.Context, Post) error               { return nil }
func (NopMirror) PostLiked(context.Context, string, string) error       { return nil }
func (NopMirror) CommentCreated(context.Context, Comment) error         { return nil }

// Service applies mutations to the engine and forwards them to the mirror.
// Mirror failures are logged and never returned.
type Service struct {
	engine        *Engine
	mirror        Mirror
	mirrorTimeout time.Duration
	logger        *zap.Logger
}

// NewService wires an engine to a mirror. A nil mirror means NopMirror.
func NewService(engine *Engine, mirror Mirror, mirrorTimeout time.Duration) *Service {
	if mirror == nil {
		mirror = NopMirror{}
	}
	if mirrorTimeout <= 0 {
		mirrorTimeout = 2 * time.Second
	}
	return &Service{
		engine:        engine,
		mirror:        mirror,
		mirrorTimeout: mirrorTimeout,
		logger:        logger.Named("social"),
	}
}

// Engine exposes the underlying engine for read-only queries.
func (s *Service) Engine() *Engine {
	return s.engine
}

// RegisterUser registers name and mirrors the new user.
func (s *Service) RegisterUser(ctx context.Context, name string) (User, error) {
	u, err := s.engine.RegisterUser(name)
	if err != nil {
		return User{}, err
	}
	s.logger.Debug("User registered", zap.String("user", u.Name))
	s.mirrorCall(ctx, "user_registered", func(ctx context.Context) error {
		return s.mirror.UserRegistered(ctx, u)
	})
	return u, nil
}

// CreatePost creates a post for author and mirrors it.
func (s *Service) CreatePost(ctx context.Context, author, title, topic, content string) (Post, error) {
	p, err := s.engine.CreatePost(author, title, topic, content)
	if err != nil {
		return Post{}, err
	}
	s.logger.Debug("Post created",
		zap.String("post_id", p.ID),
		zap.String("author", p.Author),
		zap.String("topic", p.Topic),
	)
	s.mirrorCall(ctx, "post_created", func(ctx context.Context) error {
		return s.mirror.PostCreated(ctx, p)
	})
	return p, nil
}

// CreateComment adds a comment by author to the post and mirrors it.
func (s *Service) CreateComment(ctx context.Context, author, postID, content string) (Comment, error) {
	c, err := s.engine.CreateComment(author, postID, content)
	if err != nil {
		return Comment{}, err
	}
	s.logger.Debug("Comment created",
		zap.String("comment_id", c.ID),
		zap.String("post_id", c.PostID),
		zap.String("author", c.Author),
	)
	s.mirrorCall(ctx, "comment_created", func(ctx context.Context) error {
		return s.mirror.CommentCreated(ctx, c)
	})
	return c, nil
}

// LikePost records a like. Only new likes reach the mirror.
func (s *Service) LikePost(ctx context.Context, postID, user string) (bool, error) {
	added, err := s.engine.LikePost(postID, user)
	if err != nil || !added {
		return added, err
	}
	s.logger.Debug("Post liked", zap.String("post_id", postID), zap.String("user", user))
	s.mirrorCall(ctx, "post_liked", func(ctx context.Context) error {
		return s.mirror.PostLiked(ctx, postID, user)
	})
	return true, nil
}

// AddFriend links a and b. Only new friendships reach the mirror.
func (s *Service) AddFriend(ctx context.Context, a, b string) (bool, error) {
	added, err := s.engine.AddFriend(a, b)
	if err != nil || !added {
		return added, err
	}
	s.logger.Debug("Friendship added", zap.String("user", a), zap.String("friend", b))
	s.mirrorCall(ctx, "friendship_added", func(ctx context.Context) error {
		return s.mirror.FriendshipAdded(ctx, a, b)
	})
	return true, nil
}

func (s *Service) mirrorCall(ctx context.Context, event string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, s.mirrorTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		s.logger.Warn("Mirror update failed",
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
