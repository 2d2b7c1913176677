// Package graph mirrors social graph mutations into Neo4j so the network can
// be explored with Cypher. It is write-mostly: the in-memory engine never
// reads its state back from here.
package graph

import (
	"context"
	"fmt"

	"socialgraph/backend/internal/social"
	"socialgraph/backend/pkg/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

var _ social.Mirror = (*Repository)(nil)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Named("graph"),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

// UserRegistered creates the user node
func (r *Repository) UserRegistered(ctx context.Context, user social.User) error {
	query := `
		MERGE (u:User {name: $name})
		ON CREATE SET u.registered_at = datetime()
	`
	return r.write(ctx, "user_registered", query, map[string]interface{}{
		"name": user.Name,
	})
}

// FriendshipAdded links two users. The relationship is stored once and
// queried without direction.
func (r *Repository) FriendshipAdded(ctx context.Context, a, b string) error {
	query := `
		MATCH (a:User {name: $a})
		MATCH (b:User {name: $b})
		MERGE (a)-[f:FRIENDS_WITH]-(b)
		ON CREATE SET f.since = datetime()
	`
	return r.write(ctx, "friendship_added", query, map[string]interface{}{
		"a": a,
		"b": b,
	})
}

// PostCreated creates the post node and its authorship edge
func (r *Repository) PostCreated(ctx context.Context, post social.Post) error {
	query := `
		MATCH (u:User {name: $author})
		MERGE (p:Post {id: $id})
		ON CREATE SET
			p.title = $title,
			p.topic = $topic,
			p.content = $content,
			p.date = $date
		MERGE (u)-[:AUTHORED]->(p)
	`
	return r.write(ctx, "post_created", query, map[string]interface{}{
		"author":  post.Author,
		"id":      post.ID,
		"title":   post.Title,
		"topic":   post.Topic,
		"content": post.Content,
		"date":    post.Date,
	})
}

// PostLiked records a like edge
func (r *Repository) PostLiked(ctx context.Context, postID, user string) error {
	query := `
		MATCH (u:User {name: $user})
		MATCH (p:Post {id: $postID})
		MERGE (u)-[:LIKED]->(p)
	`
	return r.write(ctx, "post_liked", query, map[string]interface{}{
		"user":   user,
		"postID": postID,
	})
}

// CommentCreated creates the comment node linked to its post and author
func (r *Repository) CommentCreated(ctx context.Context, comment social.Comment) error {
	query := `
		MATCH (u:User {name: $author})
		MATCH (p:Post {id: $postID})
		MERGE (c:Comment {id: $id})
		ON CREATE SET c.content = $content, c.date = $date
		MERGE (p)-[:HAS_COMMENT]->(c)
		MERGE (u)-[:WROTE]->(c)
	`
	return r.write(ctx, "comment_created", query, map[string]interface{}{
		"author":  comment.Author,
		"postID":  comment.PostID,
		"id":      comment.ID,
		"content": comment.Content,
		"date":    comment.Date,
	})
}

func (r *Repository) write(ctx context.Context, op, query string, params map[string]interface{}) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return fmt.Errorf("failed to mirror %s: %w", op, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("failed to mirror %s: %w", op, err)
	}

	r.logger.Debug("Mirrored mutation", zap.String("op", op))
	return nil
}
