package social

// ============================================================================
// Graph Types
// ============================================================================

// User is a snapshot of a registered user. Friends and Posts hold names and
// post IDs in insertion order.
type User struct {
	Name    string   `json:"name"`
	Friends []string `json:"friends"`
	Posts   []string `json:"posts"`
}

// Post is a snapshot of a post together with its likers and comments.
type Post struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Title    string    `json:"title"`
	Topic    string    `json:"topic"`
	Content  string    `json:"content"`
	Date     string    `json:"date"`
	Likes    []string  `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Popularity is the score used by the popular-posts ranking.
func (p Post) Popularity() int {
	return len(p.Likes) + len(p.Comments)
}

// Comment belongs to exactly one post.
type Comment struct {
	ID      string `json:"id"`
	PostID  string `json:"post_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// ActivityScore pairs a user with their post and comment count.
type ActivityScore struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// TopicStat aggregates posts sharing the same topic label.
type TopicStat struct {
	Topic      string `json:"topic"`
	PostCount  int    `json:"post_count"`
	TotalLikes int    `json:"total_likes"`
}

// Dashboard bundles every analytics view computed from the same graph state.
type Dashboard struct {
	Users    int             `json:"users"`
	Posts    int             `json:"posts"`
	Popular  []Post          `json:"popular"`
	Activity []ActivityScore `json:"activity"`
	Topics   []TopicStat     `json:"topics"`
}

// Topics offered by the post form. The engine itself accepts any label.
var Topics = []string{"News", "Sports", "Technology", "Entertainment"}

// arena records

type userRecord struct {
	name    string
	friends []string
	posts   []string
}

type postRecord struct {
	id       string
	author   string
	title    string
	topic    string
	content  string
	date     string
	likes    []string
	comments []Comment
}

func (u *userRecord) snapshot() User {
	return User{
		Name:    u.name,
		Friends: append([]string{}, u.friends...),
		Posts:   append([]string{}, u.posts...),
	}
}

func (p *postRecord) snapshot() Post {
	return Post{
		ID:       p.id,
		Author:   p.author,
		Title:    p.title,
		Topic:    p.topic,
		Content:  p.content,
		Date:     p.date,
		Likes:    append([]string{}, p.likes...),
		Comments: append([]Comment{}, p.comments...),
	}
}

func (u *userRecord) hasFriend(name string) bool {
	return contains(u.friends, name)
}

func (p *postRecord) likedBy(name string) bool {
	return contains(p.likes, name)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
