package mock

import (
	"sort"
	"sync"

	"postsapi/app/models"
	"postsapi/app/repositories"
)

// PostRepository is an in-memory PostRepository. When Err is set every
// call fails with it, which lets tests drive datastore failures.
type PostRepository struct {
	Err error

	posts    map[int]*models.Post
	comments *CommentRepository
	nextID   int
	mutex    sync.RWMutex
}

// CommentRepository is an in-memory CommentRepository with the same Err hook.
type CommentRepository struct {
	Err error

	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

// NewPostRepository returns an empty repository. Deleting a post also
// removes its comments from comments, which may be nil.
func NewPostRepository(comments *CommentRepository) *PostRepository {
	return &PostRepository{
		posts:    make(map[int]*models.Post),
		comments: comments,
		nextID:   1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[int]*models.Post)
	m.nextID = 1
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	found := *post
	return &found, nil
}

func (m *PostRepository) Find(filter models.PostFilter) ([]*models.Post, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := []*models.Post{}
	for _, post := range m.posts {
		if filter.Matches(post) {
			found := *post
			posts = append(posts, &found)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) Delete(id int) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	if m.comments != nil {
		m.comments.deleteByPost(id)
	}
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.comments {
		if comment.PostID == postID {
			found := *comment
			comments = append(comments, &found)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *CommentRepository) deleteByPost(postID int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
}
