package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"socialgraph/backend/internal/social"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *social.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := social.NewEngine(social.WithClock(social.FixedClock("2024-12-06")))
	svc := social.NewService(engine, nil, time.Second)
	return NewRouter(svc, zap.NewNop()), svc
}

func getPage(t *testing.T, router *gin.Engine, path string) (int, *goquery.Document) {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return w.Code, doc
}

func postForm(t *testing.T, router *gin.Engine, path string, form url.Values) (int, *goquery.Document) {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return w.Code, doc
}

func seedUsers(t *testing.T, svc *social.Service, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := svc.RegisterUser(context.Background(), n)
		require.NoError(t, err)
	}
}

func seedPost(t *testing.T, svc *social.Service, author, topic string) social.Post {
	t.Helper()
	p, err := svc.CreatePost(context.Background(), author, "about "+topic, topic, author+" on "+topic)
	require.NoError(t, err)
	return p
}

func TestHome_Menu(t *testing.T) {
	router, _ := newTestRouter(t)

	code, doc := getPage(t, router, "/")
	assert.Equal(t, http.StatusOK, code)

	var links []string
	doc.Find("#menu a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, href)
	})
	assert.Equal(t, []string{
		"/feed", "/users/new", "/posts/new", "/comments/new", "/likes/new",
		"/friends/new", "/popular", "/activity", "/topics", "/recommend",
	}, links)
}

func TestFeed(t *testing.T) {
	router, svc := newTestRouter(t)

	_, doc := getPage(t, router, "/feed")
	assert.Equal(t, "No posts.", doc.Find("p.empty").Text())

	seedUsers(t, svc, "alice", "bob")
	first := seedPost(t, svc, "alice", "News")
	second := seedPost(t, svc, "bob", "Sports")
	_, err := svc.LikePost(context.Background(), second.ID, "alice")
	require.NoError(t, err)

	code, doc := getPage(t, router, "/feed")
	assert.Equal(t, http.StatusOK, code)

	var ids []string
	doc.Find("div.post").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-id")
		ids = append(ids, id)
	})
	assert.Equal(t, []string{second.ID, first.ID}, ids)

	top := doc.Find("div.post").First()
	assert.Equal(t, "Author: bob", top.Find(".author").Text())
	assert.Equal(t, "Date: 2024-12-06", top.Find(".date").Text())
	assert.Equal(t, "Likes: 1, Comments: 0", top.Find(".counts").Text())
}

func TestCreateUser(t *testing.T) {
	router, svc := newTestRouter(t)

	code, doc := postForm(t, router, "/users/new", url.Values{"name": {"  alice "}})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User alice created.", doc.Find("p.message").Text())
	_, ok := svc.Engine().FindUserByName("alice")
	assert.True(t, ok)

	code, doc = postForm(t, router, "/users/new", url.Values{"name": {"alice"}})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Error: user already exists: alice", doc.Find("p.error").Text())

	code, doc = postForm(t, router, "/users/new", url.Values{"name": {"   "}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Error: name must not be blank", doc.Find("p.error").Text())
	assert.Equal(t, 1, svc.Engine().UserCount())
}

func TestPostForm_NoUsers(t *testing.T) {
	router, _ := newTestRouter(t)

	_, doc := getPage(t, router, "/posts/new")
	assert.Equal(t, "No users yet. Create a user first.", doc.Find("p.message").Text())
}

func TestPostForm_ListsTopics(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice")

	_, doc := getPage(t, router, "/posts/new")
	var topics []string
	doc.Find("select[name=topic] option").Each(func(_ int, s *goquery.Selection) {
		topics = append(topics, s.Text())
	})
	assert.Equal(t, social.Topics, topics)
}

func TestCreatePost(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice")

	tests := []struct {
		name    string
		form    url.Values
		status  int
		message string
	}{
		{
			name:    "blank author",
			form:    url.Values{"author": {" "}, "title": {"t"}, "topic": {"News"}, "content": {"c"}},
			status:  http.StatusBadRequest,
			message: "Error: author must not be blank",
		},
		{
			name:    "unknown author",
			form:    url.Values{"author": {"zed"}, "title": {"t"}, "topic": {"News"}, "content": {"c"}},
			status:  http.StatusNotFound,
			message: "Error: user not found: zed",
		},
		{
			name:    "blank title",
			form:    url.Values{"author": {"alice"}, "title": {""}, "topic": {"News"}, "content": {"c"}},
			status:  http.StatusBadRequest,
			message: "Error: title must not be blank",
		},
		{
			name:    "blank content",
			form:    url.Values{"author": {"alice"}, "title": {"t"}, "topic": {"News"}, "content": {"  "}},
			status:  http.StatusBadRequest,
			message: "Error: content must not be blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, doc := postForm(t, router, "/posts/new", tt.form)
			assert.Equal(t, tt.status, code)
			assert.Equal(t, tt.message, doc.Find("p.error").Text())
		})
	}
	assert.Empty(t, svc.Engine().Posts())

	code, doc := postForm(t, router, "/posts/new", url.Values{
		"author": {"alice"}, "title": {" Hello "}, "topic": {"News"}, "content": {"first"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Post created.", doc.Find("p.message").Text())

	posts := svc.Engine().Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, "2024-12-06", posts[0].Date)
}

func TestLikePost_Page(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice", "bob")
	p := seedPost(t, svc, "alice", "News")

	_, doc := postForm(t, router, "/posts/"+p.ID+"/like", url.Values{"user": {"bob"}})
	assert.Equal(t, "Like added.", doc.Find("p.message").Text())

	_, doc = postForm(t, router, "/posts/"+p.ID+"/like", url.Values{"user": {"bob"}})
	assert.Equal(t, "You already like this post.", doc.Find("p.message").Text())

	code, _ := postForm(t, router, "/posts/"+p.ID+"/like", url.Values{"user": {"nobody"}})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = postForm(t, router, "/posts/missing/like", url.Values{"user": {"bob"}})
	assert.Equal(t, http.StatusNotFound, code)

	post, ok := svc.Engine().Post(p.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"bob"}, post.Likes)
}

func TestComments_Page(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice", "bob")
	p := seedPost(t, svc, "alice", "News")

	_, doc := getPage(t, router, "/posts/"+p.ID+"/comments")
	assert.Equal(t, "No comments.", doc.Find("p.empty").Text())

	code, doc := postForm(t, router, "/posts/"+p.ID+"/comments", url.Values{"user": {"bob"}, "content": {" nice "}})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Comment added.", doc.Find("p.message").Text())

	_, doc = getPage(t, router, "/posts/"+p.ID+"/comments")
	require.Equal(t, 1, doc.Find("div.comment").Length())
	assert.Equal(t, "Comment author: bob", doc.Find("div.comment .author").Text())
	assert.Equal(t, "nice", doc.Find("div.comment .content").Text())

	code, _ = getPage(t, router, "/posts/missing/comments")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCommentByIndex(t *testing.T) {
	router, svc := newTestRouter(t)

	_, doc := getPage(t, router, "/comments/new")
	assert.Equal(t, "No posts.", doc.Find("p.message").Text())

	seedUsers(t, svc, "alice", "bob")
	p := seedPost(t, svc, "alice", "News")

	_, doc = getPage(t, router, "/comments/new")
	assert.Equal(t, 1, doc.Find("input[name=content]").Length())
	assert.Equal(t, 2, doc.Find("table.posts tr").Length())

	tests := []struct {
		name    string
		index   string
		status  int
		message string
	}{
		{"not a number", "abc", http.StatusBadRequest, `Error: invalid post index: "abc"`},
		{"out of range", "5", http.StatusBadRequest, "Error: no post with index 5 (have 1)"},
		{"negative", "-1", http.StatusBadRequest, "Error: no post with index -1 (have 1)"},
		{"blank", "", http.StatusBadRequest, "Error: post_index must not be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, doc := postForm(t, router, "/comments/new", url.Values{
				"post_index": {tt.index}, "user": {"bob"}, "content": {"hi"},
			})
			assert.Equal(t, tt.status, code)
			assert.Equal(t, tt.message, doc.Find("p.error").Text())
		})
	}

	code, doc := postForm(t, router, "/comments/new", url.Values{
		"post_index": {"0"}, "user": {"bob"}, "content": {"hi"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Comment added.", doc.Find("p.message").Text())

	comments, err := svc.Engine().Comments(p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "bob", comments[0].Author)
}

func TestLikeByIndex(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice", "bob")
	seedPost(t, svc, "alice", "News")
	second := seedPost(t, svc, "bob", "Sports")

	_, doc := getPage(t, router, "/likes/new")
	assert.Equal(t, 0, doc.Find("input[name=content]").Length())

	_, doc = postForm(t, router, "/likes/new", url.Values{"post_index": {"1"}, "user": {"alice"}})
	assert.Equal(t, "Like added.", doc.Find("p.message").Text())

	post, _ := svc.Engine().Post(second.ID)
	assert.Equal(t, []string{"alice"}, post.Likes)
}

func TestAddFriend_Page(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice")

	_, doc := getPage(t, router, "/friends/new")
	assert.Equal(t, "Not enough users.", doc.Find("p.message").Text())

	seedUsers(t, svc, "bob")

	_, doc = postForm(t, router, "/friends/new", url.Values{"user": {"alice"}, "friend": {"bob"}})
	assert.Equal(t, "alice and bob are now friends.", doc.Find("p.message").Text())

	_, doc = postForm(t, router, "/friends/new", url.Values{"user": {"bob"}, "friend": {"alice"}})
	assert.Equal(t, "bob and alice are already friends.", doc.Find("p.message").Text())

	_, doc = postForm(t, router, "/friends/new", url.Values{"user": {"alice"}, "friend": {"alice"}})
	assert.Equal(t, "A user cannot befriend themselves.", doc.Find("p.message").Text())

	code, doc := postForm(t, router, "/friends/new", url.Values{"user": {"alice"}, "friend": {"zed"}})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Error: user not found: zed", doc.Find("p.error").Text())

	alice, _ := svc.Engine().FindUserByName("alice")
	assert.Equal(t, []string{"bob"}, alice.Friends)
}

func TestPopular_Page(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice", "bob")
	seedPost(t, svc, "alice", "News")
	second := seedPost(t, svc, "bob", "Sports")
	_, err := svc.CreateComment(context.Background(), "alice", second.ID, "hi")
	require.NoError(t, err)

	_, doc := getPage(t, router, "/popular")
	items := doc.Find("ol.popular li")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, `bob's post: "bob on Sports" [Likes: 0, Comments: 1]`, items.First().Text())
}

func TestActivity_Page(t *testing.T) {
	router, svc := newTestRouter(t)
	seedUsers(t, svc, "alice", "bob")
	p := seedPost(t, svc, "alice", "News")
	_, err := svc.CreateComment(context.Background(), "bob", p.ID, "one")
	require.NoError(t, err)
	_, err = svc.CreateComment(context.Background(), "bob", p.ID, "two")
	require.NoError(t, err)

	_, doc := getPage(t, router, "/activity")
	var rows []string
	doc.Find("table.activity tr").Each(func(_ int, s *goquery.Selection) {
		if user := s.Find("td.user").Text(); user != "" {
			rows = append(rows, user+"="+s.Find("td.score").Text())
		}
	})
	assert.Equal(t, []string{"bob=2", "alice=1"}, rows)
}

func TestTopics_Page(t *testing.T) {
	router, svc := newTestRouter(t)

	_, doc := getPage(t, router, "/topics")
	assert.Equal(t, "No posts to analyse.", doc.Find("p.empty").Text())

	seedUsers(t, svc, "alice", "bob", "carol")
	news := seedPost(t, svc, "alice", "News")
	sports := seedPost(t, svc, "alice", "Sports")
	seedPost(t, svc, "bob", "News")
	for _, u := range []string{"bob", "carol"} {
		_, err := svc.LikePost(context.Background(), sports.ID, u)
		require.NoError(t, err)
	}
	_, err := svc.LikePost(context.Background(), news.ID, "bob")
	require.NoError(t, err)

	_, doc = getPage(t, router, "/topics")
	rows := doc.Find("table.topics tr").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("td.topic").Length() > 0
	})
	require.Equal(t, 2, rows.Length())

	first := rows.Eq(0)
	assert.Equal(t, "News", first.Find("td.topic").Text())
	assert.Equal(t, "2", first.Find("td.posts").Text())
	assert.Equal(t, "1", first.Find("td.likes").Text())
	style, _ := first.Find("div.bar").Attr("style")
	assert.Equal(t, "width: 150px;", style)

	second := rows.Eq(1)
	assert.Equal(t, "Sports", second.Find("td.topic").Text())
	style, _ = second.Find("div.bar").Attr("style")
	assert.Equal(t, "width: 300px;", style)
}

func TestTopicRows(t *testing.T) {
	tests := []struct {
		name   string
		stats  []social.TopicStat
		widths []int
	}{
		{"empty", nil, []int{}},
		{"no likes", []social.TopicStat{{Topic: "a", PostCount: 1}}, []int{0}},
		{"scaled", []social.TopicStat{
			{Topic: "a", TotalLikes: 3},
			{Topic: "b", TotalLikes: 1},
			{Topic: "c", TotalLikes: 0},
		}, []int{300, 100, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			widths := []int{}
			for _, r := range topicRows(tt.stats) {
				widths = append(widths, r.BarWidth)
			}
			assert.Equal(t, tt.widths, widths)
		})
	}
}

func TestRecommend_Page(t *testing.T) {
	router, svc := newTestRouter(t)

	_, doc := getPage(t, router, "/recommend")
	assert.Equal(t, "No users.", doc.Find("p.message").Text())

	seedUsers(t, svc, "alice", "bob", "carol", "dave")
	ctx := context.Background()
	_, err := svc.AddFriend(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.AddFriend(ctx, "bob", "carol")
	require.NoError(t, err)

	_, doc = postForm(t, router, "/recommend", url.Values{"user": {"alice"}})
	assert.Equal(t, "Recommended friends for alice: carol", doc.Find("p.recommendations").Text())

	_, doc = postForm(t, router, "/recommend", url.Values{"user": {"dave"}})
	assert.Equal(t, "No recommendations for dave", doc.Find("p.empty").Text())

	code, _ := postForm(t, router, "/recommend", url.Values{"user": {"zed"}})
	assert.Equal(t, http.StatusNotFound, code)
}
