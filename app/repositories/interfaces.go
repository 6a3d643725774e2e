package repositories

import "postsapi/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	Find(filter models.PostFilter) ([]*models.Post, error)
	Update(post *models.Post) error
	// Delete removes the post together with its comments.
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create fails with ErrNotFound when the comment's post does not exist.
	Create(comment *models.Comment) error
	ListByPost(postID int) ([]*models.Comment, error)
}
