package social

import (
	"socialgraph/backend/internal/ranking"
	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Analytics Operations
// ============================================================================

// PopularPosts ranks every post by likes plus comments. Ties keep feed order.
func (e *Engine) PopularPosts() []Post {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.popularPostsLocked()
}

// UserActivity scores each user by posts written plus comments written on any
// post. Ties keep registration order.
func (e *Engine) UserActivity() []ActivityScore {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.userActivityLocked()
}

// RecommendFriends suggests users who are not yet friends with name, ranked by
// how many of their friends name is already friends with. Candidates sharing
// no friends are left out.
func (e *Engine) RecommendFriends(name string) ([]User, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	u, ok := e.byName[name]
	if !ok {
		return nil, apperrors.NewNotFound("user", name)
	}

	type candidate struct {
		user  *userRecord
		score int
	}

	var candidates []candidate
	for _, other := range e.users {
		if other == u || u.hasFriend(other.name) {
			continue
		}
		common := 0
		for _, f := range other.friends {
			if u.hasFriend(f) {
				common++
			}
		}
		candidates = append(candidates, candidate{user: other, score: common})
	}

	ranked := ranking.SortByDescending(candidates, func(c candidate) int { return c.score })

	out := make([]User, 0, len(ranked))
	for _, c := range ranked {
		if c.score > 0 {
			out = append(out, c.user.snapshot())
		}
	}
	return out, nil
}

// TopicStats groups posts by exact topic label in order of first appearance in
// the feed.
func (e *Engine) TopicStats() []TopicStat {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.topicStatsLocked()
}

func (e *Engine) popularPostsLocked() []Post {
	return ranking.SortByDescending(snapshots(e.flattenLocked()), Post.Popularity)
}

func (e *Engine) userActivityLocked() []ActivityScore {
	scores := make([]ActivityScore, 0, len(e.users))
	for _, u := range e.users {
		comments := 0
		for _, other := range e.users {
			for _, id := range other.posts {
				for _, c := range e.posts[id].comments {
					if c.Author == u.name {
						comments++
					}
				}
			}
		}
		scores = append(scores, ActivityScore{User: u.name, Score: len(u.posts) + comments})
	}
	return ranking.SortByDescending(scores, func(s ActivityScore) int { return s.Score })
}

func (e *Engine) topicStatsLocked() []TopicStat {
	stats := make([]TopicStat, 0)
	index := make(map[string]int)

	for _, p := range e.flattenLocked() {
		i, seen := index[p.topic]
		if !seen {
			i = len(stats)
			index[p.topic] = i
			stats = append(stats, TopicStat{Topic: p.topic})
		}
		stats[i].PostCount++
		stats[i].TotalLikes += len(p.likes)
	}
	return stats
}
