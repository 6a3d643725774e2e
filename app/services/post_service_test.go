package services

import (
	"errors"
	"testing"

	"postsapi/app/models"
	"postsapi/app/repositories"
	"postsapi/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServices() (*PostService, *CommentService, *mock.PostRepository, *mock.CommentRepository) {
	commentRepo := mock.NewCommentRepository()
	postRepo := mock.NewPostRepository(commentRepo)
	return NewPostService(postRepo), NewCommentService(commentRepo, postRepo), postRepo, commentRepo
}

func TestPostService(t *testing.T) {
	service, _, postRepo, _ := setupServices()

	t.Run("create post", func(t *testing.T) {
		post, err := service.CreatePost(models.PostInput{Title: "Test Post", Contents: "Test Contents"})
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
		assert.False(t, post.CreatedAt.IsZero())
		assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	})

	t.Run("create invalid post writes nothing", func(t *testing.T) {
		_, err := service.CreatePost(models.PostInput{Title: "Only a title"})
		assert.ErrorIs(t, err, ErrValidation)

		posts, err := service.ListPosts(models.PostFilter{})
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})

	t.Run("get post", func(t *testing.T) {
		post, err := service.GetPost(1)
		require.NoError(t, err)
		assert.Equal(t, "Test Post", post.Title)
	})

	t.Run("get non-existent post", func(t *testing.T) {
		_, err := service.GetPost(999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("list posts with filter", func(t *testing.T) {
		_, err := service.CreatePost(models.PostInput{Title: "Other", Contents: "Test Contents"})
		require.NoError(t, err)

		title := "Other"
		posts, err := service.ListPosts(models.PostFilter{Title: &title})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 2, posts[0].ID)
	})

	t.Run("update post", func(t *testing.T) {
		post, err := service.UpdatePost(1, models.PostInput{Title: "Updated", Contents: "New"})
		require.NoError(t, err)
		assert.Equal(t, "Updated", post.Title)
		assert.Equal(t, "New", post.Contents)

		stored, err := service.GetPost(1)
		require.NoError(t, err)
		assert.Equal(t, "Updated", stored.Title)
	})

	t.Run("update reports missing post before invalid input", func(t *testing.T) {
		_, err := service.UpdatePost(999, models.PostInput{})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.NotErrorIs(t, err, ErrValidation)
	})

	t.Run("update with invalid input", func(t *testing.T) {
		_, err := service.UpdatePost(1, models.PostInput{Contents: "no title"})
		assert.ErrorIs(t, err, ErrValidation)

		stored, err := service.GetPost(1)
		require.NoError(t, err)
		assert.Equal(t, "Updated", stored.Title)
	})

	t.Run("delete post", func(t *testing.T) {
		post, err := service.DeletePost(2)
		require.NoError(t, err)
		assert.Equal(t, "Other", post.Title)

		_, err = service.GetPost(2)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("delete non-existent post", func(t *testing.T) {
		_, err := service.DeletePost(2)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("datastore failure", func(t *testing.T) {
		boom := errors.New("disk on fire")
		postRepo.Err = boom
		defer func() { postRepo.Err = nil }()

		_, err := service.ListPosts(models.PostFilter{})
		assert.ErrorIs(t, err, boom)
		_, err = service.CreatePost(models.PostInput{Title: "a", Contents: "b"})
		assert.ErrorIs(t, err, boom)
		_, err = service.UpdatePost(1, models.PostInput{Title: "a", Contents: "b"})
		assert.ErrorIs(t, err, boom)
		_, err = service.DeletePost(1)
		assert.ErrorIs(t, err, boom)
	})
}
