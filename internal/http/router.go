package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/session"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF validation runs first so rejected posts are answered
	// before the session middleware loads or commits anything.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(session.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadAndSave())
	}

	tmpl := template.Must(template.ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog pages
	router.GET("/", booksController.Home)
	router.GET("/books", booksController.ListBooks)
	router.GET("/books/new", booksController.NewBookForm)
	router.POST("/books", booksController.CreateBook)
	router.GET("/books/:id/edit", booksController.EditBookForm)
	router.POST("/books/:id", booksController.UpdateBook)
	router.POST("/books/:id/delete", booksController.DeleteBook)

	// Books API endpoints
	router.GET("/api/books", booksController.AllBooks)

	return router
}
