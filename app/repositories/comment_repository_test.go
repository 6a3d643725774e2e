package repositories

import (
	"testing"

	"postsapi/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	posts := NewBadgerPostRepository(db)
	repo := NewBadgerCommentRepository(db)

	// Posts 1 through 11, so both short and long ids exist.
	for i := 0; i < 11; i++ {
		require.NoError(t, posts.Create(&models.Post{Title: "t", Contents: "c"}))
	}

	t.Run("ids are global across posts", func(t *testing.T) {
		a := &models.Comment{PostID: 1, Text: "a"}
		b := &models.Comment{PostID: 2, Text: "b"}
		require.NoError(t, repo.Create(a))
		require.NoError(t, repo.Create(b))
		assert.Equal(t, 1, a.ID)
		assert.Equal(t, 2, b.ID)
	})

	t.Run("post prefix does not leak into longer ids", func(t *testing.T) {
		require.NoError(t, repo.Create(&models.Comment{PostID: 11, Text: "eleven"}))

		list, err := repo.ListByPost(1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "a", list[0].Text)
	})

	t.Run("missing post does not consume an id", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(&models.Comment{PostID: 42, Text: "x"}), ErrNotFound)

		c := &models.Comment{PostID: 3, Text: "c"}
		require.NoError(t, repo.Create(c))
		assert.Equal(t, 4, c.ID)
	})

	t.Run("corrupt value", func(t *testing.T) {
		require.NoError(t, db.Update(func(txn *badger.Txn) error {
			return txn.Set(commentKey(5, 1), []byte("{"))
		}))
		_, err := repo.ListByPost(5)
		assert.Error(t, err)
	})
}
