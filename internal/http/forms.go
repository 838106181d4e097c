package http

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// dateLayout is the wire format for publish dates.
const dateLayout = "2006-01-02"

// BookForm is the form-field contract shared by the create and edit
// pages. The record id is never bound from the form; it is path-derived
// or assigned by the store.
type BookForm struct {
	Name        string `form:"name" binding:"required"`
	Author      string `form:"author" binding:"required"`
	PublishDate string `form:"publishDate" binding:"required,datetime=2006-01-02"`
	Description string `form:"description" binding:"required"`
}

// Book converts the validated form into an entity.
func (f BookForm) Book() entities.Book {
	publishDate, _ := time.Parse(dateLayout, f.PublishDate)
	return entities.Book{
		Name:        f.Name,
		Author:      f.Author,
		PublishDate: publishDate,
		Description: f.Description,
	}
}

// formFromBook pre-fills the form with an existing record for the edit
// page.
func formFromBook(book *entities.Book) BookForm {
	return BookForm{
		Name:        book.Name,
		Author:      book.Author,
		PublishDate: book.PublishDate.Format(dateLayout),
		Description: book.Description,
	}
}

// fieldErrors turns a binding failure into per-field messages for the
// form template.
func fieldErrors(err error) map[string]string {
	messages := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		messages["Form"] = "The submitted form could not be read"
		return messages
	}

	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			messages[fieldError.Field()] = "must not be empty"
		case "datetime":
			messages[fieldError.Field()] = "must be a date in YYYY-MM-DD format"
		default:
			messages[fieldError.Field()] = "is invalid"
		}
	}
	return messages
}
