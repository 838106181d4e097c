package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/cache"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/executor"
	"github.com/mrlokans/bookcatalog/internal/pagination"
	"github.com/mrlokans/bookcatalog/internal/session"
)

// BooksController serves the catalog pages: list, create/edit forms and
// the write operations behind them.
type BooksController struct {
	store    BookStore
	sessions *session.Manager
	cache    cache.ResponseCache
	cacheTTL time.Duration
	timeout  time.Duration
	pageSize int
}

func NewBooksController(cfg RouterConfig) *BooksController {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = books.DefaultPageSize
	}
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &BooksController{
		store:    cfg.Store,
		sessions: cfg.Sessions,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		timeout:  timeout,
		pageSize: pageSize,
	}
}

// Home redirects the root path to the catalog list.
func (controller *BooksController) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/books")
}

// ListBooks renders one page of the catalog. The store call runs
// through the timeout guard; the rendered page is memoized when the
// cache is enabled.
// GET /books?page&orderBy&filter
func (controller *BooksController) ListBooks(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.String(http.StatusBadRequest, "Invalid page number")
		return
	}

	orderBy := c.Query("orderBy")
	if _, err := books.ResolveSortColumn(orderBy); err != nil {
		c.String(http.StatusBadRequest, "Unknown sort column")
		return
	}

	filter := c.Query("filter")

	// A pending flash must be rendered, so those requests bypass the
	// cache in both directions. The flash itself is consumed only
	// once the page data is ready, so a timeout or store failure does
	// not swallow it.
	hasFlash := controller.hasFlash(c)
	token := csrfToken(c)

	key := cache.ListKey(page, orderBy, filter)
	if controller.cache != nil && !hasFlash {
		if body, ok := controller.cache.Get(key); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", injectCSRFToken(body, token))
			return
		}
	}

	params := books.ListParams{
		Page:     page,
		PageSize: controller.pageSize,
		OrderBy:  orderBy,
		Filter:   likePattern(filter),
	}

	result, err := executor.Run(func() (pagination.Page[entities.Book], error) {
		return controller.store.List(params)
	}, controller.timeout)
	if errors.Is(err, executor.ErrTimeout) {
		log.Printf("ERROR: listing books timed out after %v", controller.timeout)
		c.String(http.StatusInternalServerError, "The catalog took too long to respond. Please try again.")
		return
	}
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	flash, _ := controller.popFlash(c)

	writer := newRecordingWriter(c.Writer)
	c.Writer = writer

	c.HTML(http.StatusOK, "books", gin.H{
		"Page":      result,
		"Books":     result.Items,
		"Filter":    filter,
		"OrderBy":   orderBy,
		"Flash":     flash,
		"HasFlash":  hasFlash,
		"CSRFToken": token,
	})

	// The CSRF token is per session, so the cached copy holds a
	// placeholder instead and each hit rewrites it with the caller's
	// own token.
	if controller.cache != nil && !hasFlash {
		controller.cache.Set(key, stripCSRFToken(writer.body.Bytes(), token), controller.cacheTTL)
	}
}

// AllBooks returns the whole catalog ordered by name as JSON. A store
// failure degrades to an empty shelf rather than an error page.
// GET /api/books
func (controller *BooksController) AllBooks(c *gin.Context) {
	items, err := controller.store.GetAll()
	if err != nil {
		log.Printf("ERROR: loading all books failed, serving empty list: %v", err)
		items = []entities.Book{}
	}
	c.JSON(http.StatusOK, gin.H{
		"books": items,
		"count": len(items),
	})
}

// NewBookForm renders an empty create form.
// GET /books/new
func (controller *BooksController) NewBookForm(c *gin.Context) {
	controller.renderForm(c, http.StatusOK, "New book", "/books", BookForm{}, nil)
}

// CreateBook validates the submitted form and inserts the record.
// POST /books
func (controller *BooksController) CreateBook(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		controller.renderForm(c, http.StatusBadRequest, "New book", "/books", form, fieldErrors(err))
		return
	}

	book := form.Book()
	id, err := controller.store.Create(&book)
	if err != nil {
		log.Printf("ERROR: creating book failed: %v", err)
		controller.putFlash(c, session.FlashError, "The book could not be saved.")
		c.Redirect(http.StatusSeeOther, "/books")
		return
	}

	controller.invalidateList()
	controller.putFlash(c, session.FlashSuccess, fmt.Sprintf("Book %q was added to the catalog.", book.Name))
	log.Printf("Created book %d (%s)", id, book.Name)
	c.Redirect(http.StatusSeeOther, "/books")
}

// EditBookForm renders the edit form for an existing record.
// GET /books/:id/edit
func (controller *BooksController) EditBookForm(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "load book")
		return
	}
	if book == nil {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	action := fmt.Sprintf("/books/%d", book.ID)
	controller.renderForm(c, http.StatusOK, "Edit book", action, formFromBook(book), nil)
}

// UpdateBook validates the submitted form and rewrites the record.
// POST /books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		action := fmt.Sprintf("/books/%d", id)
		controller.renderForm(c, http.StatusBadRequest, "Edit book", action, form, fieldErrors(err))
		return
	}

	book := form.Book()
	affected, err := controller.store.Update(id, &book)
	if err != nil {
		log.Printf("ERROR: updating book %d failed: %v", id, err)
		controller.putFlash(c, session.FlashError, "The book could not be updated.")
		c.Redirect(http.StatusSeeOther, "/books")
		return
	}
	if affected == 0 {
		c.String(http.StatusNotFound, "Book not found")
		return
	}

	controller.invalidateList()
	controller.putFlash(c, session.FlashSuccess, fmt.Sprintf("Book %q was updated.", book.Name))
	c.Redirect(http.StatusSeeOther, "/books")
}

// DeleteBook removes a record.
// POST /books/:id/delete
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	affected, err := controller.store.Delete(id)
	if err != nil {
		log.Printf("ERROR: deleting book %d failed: %v", id, err)
		controller.putFlash(c, session.FlashError, "The book could not be deleted.")
		c.Redirect(http.StatusSeeOther, "/books")
		return
	}
	if affected == 0 {
		controller.putFlash(c, session.FlashError, "The book was already gone.")
		c.Redirect(http.StatusSeeOther, "/books")
		return
	}

	controller.invalidateList()
	controller.putFlash(c, session.FlashSuccess, "Book was removed from the catalog.")
	c.Redirect(http.StatusSeeOther, "/books")
}

func (controller *BooksController) renderForm(c *gin.Context, status int, title, action string, form BookForm, errors map[string]string) {
	c.HTML(status, "book-form", gin.H{
		"Title":     title,
		"Action":    action,
		"Form":      form,
		"Errors":    errors,
		"CSRFToken": csrfToken(c),
	})
}

func (controller *BooksController) popFlash(c *gin.Context) (session.Flash, bool) {
	if controller.sessions == nil {
		return session.Flash{}, false
	}
	return controller.sessions.PopFlash(c.Request.Context())
}

func (controller *BooksController) hasFlash(c *gin.Context) bool {
	if controller.sessions == nil {
		return false
	}
	return controller.sessions.HasFlash(c.Request.Context())
}

func (controller *BooksController) putFlash(c *gin.Context, kind, message string) {
	if controller.sessions != nil {
		controller.sessions.PutFlash(c.Request.Context(), kind, message)
	}
}

func (controller *BooksController) invalidateList() {
	if controller.cache != nil {
		controller.cache.Invalidate(cache.ListKeyPrefix)
	}
}

// likePattern wraps a plain search term with LIKE wildcards. An empty
// term matches everything (the repository substitutes "%").
func likePattern(filter string) string {
	if filter == "" {
		return ""
	}
	return "%" + filter + "%"
}
