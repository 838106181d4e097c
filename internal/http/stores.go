package http

import (
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/pagination"
)

// BookStore defines the record store operations the controllers need.
// Implemented by books.Repository; tests substitute stubs.
type BookStore interface {
	GetByID(id uint) (*entities.Book, error)
	List(params books.ListParams) (pagination.Page[entities.Book], error)
	GetAll() ([]entities.Book, error)
	Create(book *entities.Book) (uint, error)
	Update(id uint, book *entities.Book) (int64, error)
	Delete(id uint) (int64, error)
}
