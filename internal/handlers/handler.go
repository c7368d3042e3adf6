package handlers

import (
	"html/template"

	"blog/internal/form"
	"blog/internal/logger"
	"blog/internal/service"
	"blog/internal/session"
	"blog/web"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTML routes to services, sessions and logging.
type Handler struct {
	services *service.Service
	sessions *session.Manager
	forms    *form.Validator
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, sessions *session.Manager, log *logger.Logger) *Handler {
	return &Handler{
		services: services,
		sessions: sessions,
		forms:    form.New(),
		log:      log,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, h.sessions.Middleware())
	router.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	h.registerPageRoutes(router)
	h.registerAuthRoutes(router)
	h.registerArticleRoutes(router)

	router.NoRoute(h.notFound)
	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/about", h.about)
	r.GET("/articles", h.listArticles)
	r.GET("/article/:id", h.showArticle)
	r.GET("/search", h.searchRedirect)
	r.POST("/search", h.search)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/register", h.registerForm)
	r.POST("/register", h.register)
	r.GET("/login", h.loginForm)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
}

func (h *Handler) registerArticleRoutes(r *gin.Engine) {
	protected := r.Group("/", h.loginRequired)
	{
		protected.GET("/dashboard", h.dashboard)
		protected.GET("/addarticle", h.addArticleForm)
		protected.POST("/addarticle", h.addArticle)
		protected.GET("/edit/:id", h.editArticleForm)
		protected.POST("/edit/:id", h.editArticle)
		protected.GET("/delete/:id", h.deleteArticle)
	}
}
