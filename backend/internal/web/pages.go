package web

import (
	"net/http"
	"strings"

	"socialgraph/backend/internal/social"
	apperrors "socialgraph/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) registerPages(router *gin.Engine) {
	router.GET("/", h.home)
	router.GET("/feed", h.feed)

	router.GET("/users/new", h.userForm)
	router.POST("/users/new", h.createUser)

	router.GET("/posts/new", h.postForm)
	router.POST("/posts/new", h.createPost)
	router.GET("/posts/:id/comments", h.postComments)
	router.POST("/posts/:id/comments", h.commentPost)
	router.POST("/posts/:id/like", h.likePost)

	router.GET("/comments/new", h.commentByIndexForm)
	router.POST("/comments/new", h.commentByIndex)
	router.GET("/likes/new", h.likeByIndexForm)
	router.POST("/likes/new", h.likeByIndex)

	router.GET("/friends/new", h.friendForm)
	router.POST("/friends/new", h.addFriend)

	router.GET("/popular", h.popular)
	router.GET("/activity", h.activity)
	router.GET("/topics", h.topics)
	router.GET("/recommend", h.recommendForm)
	router.POST("/recommend", h.recommend)
}

// formValue returns a trimmed form field
func formValue(c *gin.Context, name string) string {
	return strings.TrimSpace(c.PostForm(name))
}

func (h *Handler) renderMessage(c *gin.Context, title, message, back string) {
	c.HTML(http.StatusOK, "message.html", gin.H{
		"Title":   title,
		"Message": message,
		"Back":    back,
	})
}

func (h *Handler) renderError(c *gin.Context, err error, back string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.HTML(status, "error.html", gin.H{
		"Title":   "Error",
		"Message": apperrors.MessageOf(err),
		"Back":    back,
	})
}

func (h *Handler) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Home"})
}

func (h *Handler) feed(c *gin.Context) {
	c.HTML(http.StatusOK, "feed.html", gin.H{
		"Title": "Feed",
		"Posts": h.svc.Engine().PopularPosts(),
	})
}

func (h *Handler) userForm(c *gin.Context) {
	c.HTML(http.StatusOK, "user_form.html", gin.H{"Title": "Create user"})
}

func (h *Handler) createUser(c *gin.Context) {
	name := formValue(c, "name")
	if err := requireFields(field{"name", name}); err != nil {
		h.renderError(c, err, "/users/new")
		return
	}

	u, err := h.svc.RegisterUser(c.Request.Context(), name)
	if err != nil {
		h.renderError(c, err, "/users/new")
		return
	}
	h.renderMessage(c, "User created", "User "+u.Name+" created.", "/")
}

func (h *Handler) postForm(c *gin.Context) {
	if h.svc.Engine().UserCount() == 0 {
		h.renderMessage(c, "Create post", "No users yet. Create a user first.", "/")
		return
	}
	c.HTML(http.StatusOK, "post_form.html", gin.H{
		"Title":  "Create post",
		"Topics": social.Topics,
	})
}

func (h *Handler) createPost(c *gin.Context) {
	author := formValue(c, "author")
	title := formValue(c, "title")
	topic := formValue(c, "topic")
	content := formValue(c, "content")

	if err := requireFields(field{"author", author}); err != nil {
		h.renderError(c, err, "/posts/new")
		return
	}
	if _, ok := h.svc.Engine().FindUserByName(author); !ok {
		h.renderError(c, apperrors.NewNotFound("user", author), "/posts/new")
		return
	}
	if err := requireFields(field{"title", title}, field{"topic", topic}, field{"content", content}); err != nil {
		h.renderError(c, err, "/posts/new")
		return
	}

	if _, err := h.svc.CreatePost(c.Request.Context(), author, title, topic, content); err != nil {
		h.renderError(c, err, "/posts/new")
		return
	}
	h.renderMessage(c, "Post created", "Post created.", "/feed")
}

func (h *Handler) postComments(c *gin.Context) {
	post, ok := h.svc.Engine().Post(c.Param("id"))
	if !ok {
		h.renderError(c, apperrors.NewNotFound("post", c.Param("id")), "/feed")
		return
	}
	c.HTML(http.StatusOK, "comments.html", gin.H{
		"Title": "Comments",
		"Post":  post,
		"Back":  "/feed",
	})
}

func (h *Handler) commentPost(c *gin.Context) {
	postID := c.Param("id")
	back := "/posts/" + postID + "/comments"
	h.comment(c, postID, formValue(c, "user"), formValue(c, "content"), back)
}

func (h *Handler) comment(c *gin.Context, postID, user, content, back string) {
	if err := requireFields(field{"user", user}, field{"content", content}); err != nil {
		h.renderError(c, err, back)
		return
	}
	if _, err := h.svc.CreateComment(c.Request.Context(), user, postID, content); err != nil {
		h.renderError(c, err, back)
		return
	}
	h.renderMessage(c, "Comment added", "Comment added.", back)
}

func (h *Handler) likePost(c *gin.Context) {
	h.like(c, c.Param("id"), formValue(c, "user"))
}

func (h *Handler) like(c *gin.Context, postID, user string) {
	if err := requireFields(field{"user", user}); err != nil {
		h.renderError(c, err, "/feed")
		return
	}
	added, err := h.svc.LikePost(c.Request.Context(), postID, user)
	if err != nil {
		h.renderError(c, err, "/feed")
		return
	}
	if !added {
		h.renderMessage(c, "Like", "You already like this post.", "/feed")
		return
	}
	h.renderMessage(c, "Like", "Like added.", "/feed")
}

func (h *Handler) indexForm(c *gin.Context, heading, action, submit string, withContent bool) {
	posts := h.svc.Engine().Posts()
	if len(posts) == 0 {
		h.renderMessage(c, heading, "No posts.", "/")
		return
	}
	c.HTML(http.StatusOK, "index_form.html", gin.H{
		"Title":       heading,
		"Heading":     heading,
		"Posts":       posts,
		"Action":      action,
		"Submit":      submit,
		"WithContent": withContent,
	})
}

// postFromIndex resolves the post_index form field against the feed
func (h *Handler) postFromIndex(c *gin.Context) (social.Post, error) {
	index, err := parseIndex(c.PostForm("post_index"))
	if err != nil {
		return social.Post{}, err
	}
	return h.svc.Engine().PostAt(index)
}

func (h *Handler) commentByIndexForm(c *gin.Context) {
	h.indexForm(c, "Create comment", "/comments/new", "Add comment", true)
}

func (h *Handler) commentByIndex(c *gin.Context) {
	user := formValue(c, "user")
	content := formValue(c, "content")
	if err := requireFields(field{"user", user}); err != nil {
		h.renderError(c, err, "/comments/new")
		return
	}
	post, err := h.postFromIndex(c)
	if err != nil {
		h.renderError(c, err, "/comments/new")
		return
	}
	h.comment(c, post.ID, user, content, "/comments/new")
}

func (h *Handler) likeByIndexForm(c *gin.Context) {
	h.indexForm(c, "Like a post", "/likes/new", "Like", false)
}

func (h *Handler) likeByIndex(c *gin.Context) {
	user := formValue(c, "user")
	if err := requireFields(field{"user", user}); err != nil {
		h.renderError(c, err, "/likes/new")
		return
	}
	post, err := h.postFromIndex(c)
	if err != nil {
		h.renderError(c, err, "/likes/new")
		return
	}
	h.like(c, post.ID, user)
}

func (h *Handler) friendForm(c *gin.Context) {
	if h.svc.Engine().UserCount() < 2 {
		h.renderMessage(c, "Add friend", "Not enough users.", "/")
		return
	}
	c.HTML(http.StatusOK, "friend_form.html", gin.H{"Title": "Add friend"})
}

func (h *Handler) addFriend(c *gin.Context) {
	user := formValue(c, "user")
	friend := formValue(c, "friend")
	if err := requireFields(field{"user", user}, field{"friend", friend}); err != nil {
		h.renderError(c, err, "/friends/new")
		return
	}

	added, err := h.svc.AddFriend(c.Request.Context(), user, friend)
	if err != nil {
		h.renderError(c, err, "/friends/new")
		return
	}

	switch {
	case added:
		h.renderMessage(c, "Add friend", user+" and "+friend+" are now friends.", "/")
	case user == friend:
		h.renderMessage(c, "Add friend", "A user cannot befriend themselves.", "/friends/new")
	default:
		h.renderMessage(c, "Add friend", user+" and "+friend+" are already friends.", "/")
	}
}

func (h *Handler) popular(c *gin.Context) {
	c.HTML(http.StatusOK, "popular.html", gin.H{
		"Title": "Popular posts",
		"Posts": h.svc.Engine().PopularPosts(),
	})
}

func (h *Handler) activity(c *gin.Context) {
	c.HTML(http.StatusOK, "activity.html", gin.H{
		"Title":  "User activity",
		"Scores": h.svc.Engine().UserActivity(),
	})
}

// topicRow is one line of the topic chart
type topicRow struct {
	Topic      string
	PostCount  int
	TotalLikes int
	BarWidth   int
}

const maxBarWidth = 300

// topicRows scales bar widths against the most liked topic, never below 1
func topicRows(stats []social.TopicStat) []topicRow {
	maxLikes := 1
	for _, s := range stats {
		if s.TotalLikes > maxLikes {
			maxLikes = s.TotalLikes
		}
	}

	rows := make([]topicRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, topicRow{
			Topic:      s.Topic,
			PostCount:  s.PostCount,
			TotalLikes: s.TotalLikes,
			BarWidth:   int(float64(s.TotalLikes) / float64(maxLikes) * maxBarWidth),
		})
	}
	return rows
}

func (h *Handler) topics(c *gin.Context) {
	c.HTML(http.StatusOK, "topics.html", gin.H{
		"Title": "Topic popularity chart",
		"Rows":  topicRows(h.svc.Engine().TopicStats()),
	})
}

func (h *Handler) recommendForm(c *gin.Context) {
	if h.svc.Engine().UserCount() == 0 {
		h.renderMessage(c, "Friend recommendations", "No users.", "/")
		return
	}
	c.HTML(http.StatusOK, "recommend.html", gin.H{"Title": "Friend recommendations"})
}

func (h *Handler) recommend(c *gin.Context) {
	user := formValue(c, "user")
	if err := requireFields(field{"user", user}); err != nil {
		h.renderError(c, err, "/recommend")
		return
	}

	recs, err := h.svc.Engine().RecommendFriends(user)
	if err != nil {
		h.renderError(c, err, "/recommend")
		return
	}

	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Name)
	}
	c.HTML(http.StatusOK, "recommend.html", gin.H{
		"Title":           "Friend recommendations",
		"User":            user,
		"Recommendations": names,
	})
}
