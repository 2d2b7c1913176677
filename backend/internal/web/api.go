package web

import (
	"net/http"
	"strings"

	apperrors "socialgraph/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerUserRequest struct {
	Name string `json:"name"`
}

type addFriendRequest struct {
	Friend string `json:"friend"`
}

type createPostRequest struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

type likeRequest struct {
	User string `json:"user"`
}

type commentRequest struct {
	User    string `json:"user"`
	Content string `json:"content"`
}

func (h *Handler) registerAPI(api *gin.RouterGroup) {
	api.GET("/users", h.apiListUsers)
	api.POST("/users", h.apiRegisterUser)
	api.GET("/users/:name", h.apiGetUser)
	api.POST("/users/:name/friends", h.apiAddFriend)
	api.GET("/users/:name/recommendations", h.apiRecommend)

	api.GET("/posts", h.apiListPosts)
	api.POST("/posts", h.apiCreatePost)
	api.GET("/posts/index/:index", h.apiPostAt)
	api.POST("/posts/:id/likes", h.apiLike)
	api.GET("/posts/:id/comments", h.apiListComments)
	api.POST("/posts/:id/comments", h.apiComment)

	analytics := api.Group("/analytics")
	{
		analytics.GET("/popular", func(c *gin.Context) {
			c.JSON(http.StatusOK, h.svc.Engine().PopularPosts())
		})
		analytics.GET("/activity", func(c *gin.Context) {
			c.JSON(http.StatusOK, h.svc.Engine().UserActivity())
		})
		analytics.GET("/topics", func(c *gin.Context) {
			c.JSON(http.StatusOK, h.svc.Engine().TopicStats())
		})
		analytics.GET("/dashboard", h.apiDashboard)
	}
}

// apiError writes {"error", "kind"} with the status mapped from the error kind
func (h *Handler) apiError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("API request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{
		"error": apperrors.MessageOf(err),
		"kind":  apperrors.KindOf(err),
	})
}

// bind decodes the JSON body, answering with an invalid_body error on failure
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.apiError(c, apperrors.NewInvalidBody(err))
		return false
	}
	return true
}

func (h *Handler) apiListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Engine().Users())
}

func (h *Handler) apiRegisterUser(c *gin.Context) {
	var req registerUserRequest
	if !h.bind(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if err := requireFields(field{"name", name}); err != nil {
		h.apiError(c, err)
		return
	}

	u, err := h.svc.RegisterUser(c.Request.Context(), name)
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) apiGetUser(c *gin.Context) {
	name := c.Param("name")
	u, ok := h.svc.Engine().FindUserByName(name)
	if !ok {
		h.apiError(c, apperrors.NewNotFound("user", name))
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) apiAddFriend(c *gin.Context) {
	var req addFriendRequest
	if !h.bind(c, &req) {
		return
	}
	friend := strings.TrimSpace(req.Friend)
	if err := requireFields(field{"friend", friend}); err != nil {
		h.apiError(c, err)
		return
	}

	added, err := h.svc.AddFriend(c.Request.Context(), c.Param("name"), friend)
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (h *Handler) apiRecommend(c *gin.Context) {
	recs, err := h.svc.Engine().RecommendFriends(c.Param("name"))
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) apiListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Engine().Posts())
}

func (h *Handler) apiCreatePost(c *gin.Context) {
	var req createPostRequest
	if !h.bind(c, &req) {
		return
	}
	author := strings.TrimSpace(req.Author)
	title := strings.TrimSpace(req.Title)
	topic := strings.TrimSpace(req.Topic)
	content := strings.TrimSpace(req.Content)

	if err := requireFields(
		field{"author", author},
		field{"title", title},
		field{"topic", topic},
		field{"content", content},
	); err != nil {
		h.apiError(c, err)
		return
	}

	p, err := h.svc.CreatePost(c.Request.Context(), author, title, topic, content)
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) apiPostAt(c *gin.Context) {
	index, err := parseIndex(c.Param("index"))
	if err != nil {
		h.apiError(c, err)
		return
	}
	p, err := h.svc.Engine().PostAt(index)
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) apiLike(c *gin.Context) {
	var req likeRequest
	if !h.bind(c, &req) {
		return
	}
	user := strings.TrimSpace(req.User)
	if err := requireFields(field{"user", user}); err != nil {
		h.apiError(c, err)
		return
	}

	added, err := h.svc.LikePost(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (h *Handler) apiListComments(c *gin.Context) {
	comments, err := h.svc.Engine().Comments(c.Param("id"))
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) apiComment(c *gin.Context) {
	var req commentRequest
	if !h.bind(c, &req) {
		return
	}
	user := strings.TrimSpace(req.User)
	content := strings.TrimSpace(req.Content)
	if err := requireFields(field{"user", user}, field{"content", content}); err != nil {
		h.apiError(c, err)
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), user, c.Param("id"), content)
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) apiDashboard(c *gin.Context) {
	d, err := h.svc.Engine().Dashboard(c.Request.Context())
	if err != nil {
		h.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
