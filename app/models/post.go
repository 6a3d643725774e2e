package models

import (
	"time"
)

// Validate checks that both title and contents are present.
func (in *PostInput) Validate() error {
	return validate.Struct(in)
}

// NewPost builds a post from a validated input.
func NewPost(in PostInput) *Post {
	return &Post{
		Title:    in.Title,
		Contents: in.Contents,
	}
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
}

// Apply copies the input fields onto the post and bumps UpdatedAt.
func (p *Post) Apply(in PostInput) {
	p.Title = in.Title
	p.Contents = in.Contents
	p.UpdatedAt = time.Now().UTC()
}
