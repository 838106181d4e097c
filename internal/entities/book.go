package entities

import (
	"time"
)

// Book is a single catalog record. The id is assigned by the store on
// insert and is never bound from user input.
type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index;size:255;not null" json:"name"`
	Author      string    `gorm:"size:1000;not null" json:"author"`
	PublishDate time.Time `gorm:"column:publish_date" json:"publish_date"`
	Description string    `gorm:"size:255;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
