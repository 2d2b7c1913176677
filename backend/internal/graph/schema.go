package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

var schemaStatements = []string{
	"CREATE CONSTRAINT user_name_unique IF NOT EXISTS FOR (u:User) REQUIRE u.name IS UNIQUE",
	"CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.id IS UNIQUE",
	"CREATE CONSTRAINT comment_id_unique IF NOT EXISTS FOR (c:Comment) REQUIRE c.id IS UNIQUE",
	"CREATE INDEX post_topic IF NOT EXISTS FOR (p:Post) ON (p.topic)",
}

// EnsureSchema creates the constraints and indexes the mirror relies on.
// Every statement is attempted; the error reports how many failed.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	var failed int
	for _, stmt := range schemaStatements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			failed++
			r.logger.Warn("Schema statement failed", zap.String("statement", stmt), zap.Error(err))
			continue
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schema statements failed", failed, len(schemaStatements))
	}
	return nil
}
