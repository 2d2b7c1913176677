package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ============================================================================
// Mirror Statistics
// ============================================================================

// TopicCount is the number of mirrored posts carrying a topic label
type TopicCount struct {
	Topic string `json:"topic"`
	Posts int    `json:"posts"`
	Likes int    `json:"likes"`
}

// Totals summarises what the mirror currently holds
type Totals struct {
	Users       int `json:"users"`
	Posts       int `json:"posts"`
	Comments    int `json:"comments"`
	Friendships int `json:"friendships"`
}

// TopicCounts aggregates mirrored posts per topic, most posts first
func (r *Repository) TopicCounts(ctx context.Context) ([]TopicCount, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post)
		OPTIONAL MATCH (:User)-[l:LIKED]->(p)
		WITH p, count(l) as like_count
		RETURN p.topic as topic, count(p) as posts, sum(like_count) as likes
		ORDER BY posts DESC, topic
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count topics: %w", err)
	}

	var counts []TopicCount
	for result.Next(ctx) {
		record := result.Record()
		counts = append(counts, TopicCount{
			Topic: getStringFromRecord(record, "topic"),
			Posts: getIntFromRecord(record, "posts"),
			Likes: getIntFromRecord(record, "likes"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topic counts: %w", err)
	}

	return counts, nil
}

// CountTotals returns node and relationship counts for the mirrored graph
func (r *Repository) CountTotals(ctx context.Context) (*Totals, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		CALL { MATCH (u:User) RETURN count(u) as users }
		CALL { MATCH (p:Post) RETURN count(p) as posts }
		CALL { MATCH (c:Comment) RETURN count(c) as comments }
		CALL { MATCH (:User)-[f:FRIENDS_WITH]-(:User) RETURN count(DISTINCT f) as friendships }
		RETURN users, posts, comments, friendships
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count totals: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read totals: %w", err)
	}

	return &Totals{
		Users:       getIntFromRecord(record, "users"),
		Posts:       getIntFromRecord(record, "posts"),
		Comments:    getIntFromRecord(record, "comments"),
		Friendships: getIntFromRecord(record, "friendships"),
	}, nil
}
