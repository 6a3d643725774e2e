package repositories

import (
	"testing"

	"postsapi/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// testStoreContract exercises the behaviour every backend must share.
func testStoreContract(t *testing.T, store *Store) {
	posts := store.Posts
	comments := store.Comments

	newPost := func(t *testing.T, title, contents string) *models.Post {
		t.Helper()
		post := models.NewPost(models.PostInput{Title: title, Contents: contents})
		post.BeforeCreate()
		require.NoError(t, posts.Create(post))
		return post
	}

	t.Run("find on empty store", func(t *testing.T) {
		found, err := posts.Find(models.PostFilter{})
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})

	first := newPost(t, "Hello", "World")
	second := newPost(t, "Second", "Post")

	t.Run("create assigns sequential ids", func(t *testing.T) {
		assert.Equal(t, 1, first.ID)
		assert.Equal(t, 2, second.ID)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := posts.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", got.Title)
		assert.Equal(t, "World", got.Contents)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := posts.GetByID(999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("find all in id order", func(t *testing.T) {
		for i := 0; i < 9; i++ {
			newPost(t, "Filler", "Body")
		}
		found, err := posts.Find(models.PostFilter{})
		require.NoError(t, err)
		require.Len(t, found, 11)
		for i, p := range found {
			assert.Equal(t, i+1, p.ID)
		}
	})

	t.Run("find with filters", func(t *testing.T) {
		found, err := posts.Find(models.PostFilter{Title: strPtr("Hello")})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, first.ID, found[0].ID)

		found, err = posts.Find(models.PostFilter{ID: intPtr(second.ID)})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Second", found[0].Title)

		found, err = posts.Find(models.PostFilter{ID: intPtr(second.ID), Title: strPtr("Hello")})
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = posts.Find(models.PostFilter{ID: intPtr(0)})
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = posts.Find(models.PostFilter{Contents: strPtr("Body")})
		require.NoError(t, err)
		assert.Len(t, found, 9)
	})

	t.Run("update", func(t *testing.T) {
		got, err := posts.GetByID(first.ID)
		require.NoError(t, err)
		got.Apply(models.PostInput{Title: "Updated", Contents: "Contents"})
		require.NoError(t, posts.Update(got))

		reread, err := posts.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", reread.Title)
		assert.Equal(t, "Contents", reread.Contents)
	})

	t.Run("update missing", func(t *testing.T) {
		err := posts.Update(&models.Post{ID: 999, Title: "x", Contents: "y"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("comments", func(t *testing.T) {
		list, err := comments.ListByPost(second.ID)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)

		for _, text := range []string{"one", "two", "three"} {
			c := models.NewComment(second.ID, models.CommentInput{Text: text})
			c.BeforeCreate()
			require.NoError(t, comments.Create(c))
			assert.NotZero(t, c.ID)
		}
		other := models.NewComment(first.ID, models.CommentInput{Text: "elsewhere"})
		other.BeforeCreate()
		require.NoError(t, comments.Create(other))

		list, err = comments.ListByPost(second.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "one", list[0].Text)
		assert.Equal(t, "three", list[2].Text)
		for _, c := range list {
			assert.Equal(t, second.ID, c.PostID)
		}
	})

	t.Run("comment on a missing post", func(t *testing.T) {
		c := models.NewComment(999, models.CommentInput{Text: "orphan"})
		c.BeforeCreate()
		assert.ErrorIs(t, comments.Create(c), ErrNotFound)

		list, err := comments.ListByPost(999)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("delete cascades to comments", func(t *testing.T) {
		require.NoError(t, posts.Delete(second.ID))

		_, err := posts.GetByID(second.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		list, err := comments.ListByPost(second.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		list, err = comments.ListByPost(first.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("delete missing", func(t *testing.T) {
		assert.ErrorIs(t, posts.Delete(second.ID), ErrNotFound)
	})

	t.Run("comment on a deleted post", func(t *testing.T) {
		c := models.NewComment(second.ID, models.CommentInput{Text: "late"})
		c.BeforeCreate()
		assert.ErrorIs(t, comments.Create(c), ErrNotFound)

		list, err := comments.ListByPost(second.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
