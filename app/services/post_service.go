package services

import (
	"fmt"

	"postsapi/app/models"
	"postsapi/app/repositories"
)

// PostService handles business logic for posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns the posts matching filter in id order.
func (s *PostService) ListPosts(filter models.PostFilter) ([]*models.Post, error) {
	posts, err := s.postRepo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return post, nil
}

// CreatePost validates the input and stores a new post. Nothing is written
// when validation fails.
func (s *PostService) CreatePost(in models.PostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	post := models.NewPost(in)
	post.BeforeCreate()
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost replaces the title and contents of an existing post. A missing
// post is reported before an invalid input.
func (s *PostService) UpdatePost(id int, in models.PostInput) (*models.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	post.Apply(in)
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return post, nil
}

// DeletePost deletes a post and all its comments, returning the post as it
// was before removal.
func (s *PostService) DeletePost(id int) (*models.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return post, nil
}
