package repositories

import (
	"errors"
	"fmt"

	"postsapi/app/models"

	"gorm.io/gorm"
)

// GormPostRepository implements PostRepository on a SQL database through gorm.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *GormPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *GormPostRepository) Find(filter models.PostFilter) ([]*models.Post, error) {
	q := r.db.Model(&models.Post{})
	if filter.ID != nil {
		q = q.Where("id = ?", *filter.ID)
	}
	if filter.Title != nil {
		q = q.Where("title = ?", *filter.Title)
	}
	if filter.Contents != nil {
		q = q.Where("contents = ?", *filter.Contents)
	}

	posts := []*models.Post{}
	if err := q.Order("id asc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormPostRepository) Update(post *models.Post) error {
	res := r.db.Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":      post.Title,
			"contents":   post.Contents,
			"updated_at": post.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormPostRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of post %d: %w", id, err)
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GormCommentRepository implements CommentRepository through gorm.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts the comment if its post still exists.
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Create(comment).Error
	})
}

func (r *GormCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	if err := r.db.Where("post_id = ?", postID).Order("id asc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
