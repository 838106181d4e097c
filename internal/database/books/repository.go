// Package books provides database operations for catalog records.
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/pagination"
)

// ErrUnknownColumn is returned when a list query names a sort column
// outside the allow-list.
var ErrUnknownColumn = errors.New("unknown sort column")

// DefaultPageSize is used when a list query does not specify a window size.
const DefaultPageSize = 10

// sortColumns is the allow-list of sortable columns. Caller input never
// reaches the ORDER BY clause without passing through it.
var sortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"author":       "author",
	"publish_date": "publish_date",
}

// legacySortIndexes maps the numeric orderBy values from the old URL
// scheme onto column names.
var legacySortIndexes = map[string]string{
	"1": "id",
	"2": "name",
	"3": "author",
	"4": "publish_date",
}

// ResolveSortColumn validates an orderBy parameter against the
// allow-list. Empty input falls back to the name column.
func ResolveSortColumn(orderBy string) (string, error) {
	if orderBy == "" {
		return "name", nil
	}
	if col, ok := sortColumns[orderBy]; ok {
		return col, nil
	}
	if col, ok := legacySortIndexes[orderBy]; ok {
		return col, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, orderBy)
}

// ListParams describes one window of the catalog list.
type ListParams struct {
	Page     int
	PageSize int
	OrderBy  string // column name or legacy numeric index, empty means name
	Filter   string // LIKE pattern applied to name, caller wraps wildcards
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a book by its ID. An absent row yields (nil, nil),
// not an error.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List fetches one page of books matching the name filter, ordered by
// the requested column, together with the total matching row count.
func (r *Repository) List(params ListParams) (pagination.Page[entities.Book], error) {
	var empty pagination.Page[entities.Book]

	column, err := ResolveSortColumn(params.OrderBy)
	if err != nil {
		return empty, err
	}

	page := params.Page
	if page < 0 {
		page = 0
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	filter := params.Filter
	if filter == "" {
		filter = "%"
	}

	var total int64
	if err := r.db.Model(&entities.Book{}).Where("name LIKE ?", filter).Count(&total).Error; err != nil {
		return empty, fmt.Errorf("count books: %w", err)
	}

	var items []entities.Book
	err = r.db.Model(&entities.Book{}).
		Where("name LIKE ?", filter).
		Order(column + " ASC NULLS LAST").
		Limit(pageSize).
		Offset(page * pageSize).
		Find(&items).Error
	if err != nil {
		return empty, fmt.Errorf("list books: %w", err)
	}

	return pagination.New(items, page, pageSize, total), nil
}

// GetAll retrieves every book ordered by name.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var items []entities.Book
	err := r.db.Order("name ASC").Find(&items).Error
	return items, err
}

// Create inserts a book and returns the generated id.
func (r *Repository) Create(book *entities.Book) (uint, error) {
	if err := r.db.Create(book).Error; err != nil {
		return 0, err
	}
	return book.ID, nil
}

// Update rewrites all mutable fields of the book with the given id and
// returns the affected row count (0 when the id does not exist).
func (r *Repository) Update(id uint, book *entities.Book) (int64, error) {
	res := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(map[string]any{
		"name":         book.Name,
		"author":       book.Author,
		"publish_date": book.PublishDate,
		"description":  book.Description,
	})
	return res.RowsAffected, res.Error
}

// Delete removes the book with the given id and returns the affected
// row count (0 when the id does not exist).
func (r *Repository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&entities.Book{}, id)
	return res.RowsAffected, res.Error
}
