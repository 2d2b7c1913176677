// Package web serves the social graph over HTTP: the HTML menu pages and a
// JSON API over the same operations. Input trimming and blank/index
// validation happen here, before the engine is called.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"socialgraph/backend/internal/social"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Handler holds the dependencies shared by page and API handlers
type Handler struct {
	svc    *social.Service
	logger *zap.Logger
}

// NewHandler creates a handler over svc
func NewHandler(svc *social.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: log}
}

// NewRouter builds the gin engine with middleware, templates and every route
func NewRouter(svc *social.Service, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())
	router.SetHTMLTemplate(loadTemplates())

	h := NewHandler(svc, log)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.registerPages(router)
	h.registerAPI(router.Group("/api"))

	return router
}

func loadTemplates() *template.Template {
	funcs := template.FuncMap{
		"join": func(items []string) string { return strings.Join(items, ", ") },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}
