package models

import (
	"errors"
	"time"
)

// Validate checks that the comment text is present.
func (in *CommentInput) Validate() error {
	return validate.Struct(in)
}

// NewComment builds a comment for the given post.
func NewComment(postID int, in CommentInput) *Comment {
	return &Comment{
		PostID: postID,
		Text:   in.Text,
	}
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.PostID = post.ID
	return nil
}
