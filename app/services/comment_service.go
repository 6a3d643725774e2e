package services

import (
	"fmt"

	"postsapi/app/models"
	"postsapi/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	// Verify post exists
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", postID, err)
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

// CreateComment stores a comment on an existing post.
func (s *CommentService) CreateComment(postID int, in models.CommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", postID, err)
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	comment := models.NewComment(postID, in)
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate()

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
