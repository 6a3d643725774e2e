package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post represents a top-level post.
type Post struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"not null"`
	Contents  string    `json:"contents" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment represents a comment attached to a post.
type Comment struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    int       `json:"post_id" gorm:"index;not null"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// PostInput is the body accepted when creating or updating a post.
type PostInput struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// CommentInput is the body accepted when creating a comment.
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}
