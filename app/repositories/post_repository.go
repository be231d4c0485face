package repositories

import (
	"sync"

	"helpboard/app/models"
	"helpboard/app/storage"
)

// PostRepository holds the ordered post collection and the close counters
// in memory and writes all of it back through the store after every
// mutation.
type PostRepository struct {
	store    *storage.Store
	mutex    sync.RWMutex
	posts    []*models.Post
	counters models.Counters
	ids      idGenerator
	now      Clock
}

// NewPostRepository creates an empty repository. Call Load to populate it.
func NewPostRepository(store *storage.Store, now Clock) *PostRepository {
	if now == nil {
		now = SystemClock
	}
	return &PostRepository{store: store, now: now}
}

// Load replaces the in-memory state with what the store holds. A posts value
// that cannot be read or decoded resets everything, counters included, to
// empty.
func (r *PostRepository) Load() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.posts = nil
	r.counters = models.Counters{}

	var posts []*models.Post
	if r.store.Fetch(storage.KeyPosts, &posts) == storage.Failed {
		return
	}
	for _, p := range posts {
		if p == nil {
			continue
		}
		r.posts = append(r.posts, p)
		r.ids.observe(p.ID)
	}
	r.counters.Closed, _ = r.store.ReadInt(storage.KeyClosedCount)
	r.counters.Helped, _ = r.store.ReadInt(storage.KeyHelpCount)
}

// Create validates fields and appends a new open post.
func (r *PostRepository) Create(fields models.PostFields) (models.Post, error) {
	if err := fields.Validate(); err != nil {
		return models.Post{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	post := models.NewPost(r.ids.next(now), fields, now)
	r.posts = append(r.posts, post)
	r.persist()
	return post.Clone(), nil
}

// Update overwrites the editable fields of an open post.
func (r *PostRepository) Update(id int64, fields models.PostFields) (models.Post, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post, _ := r.find(id)
	if post == nil {
		return models.Post{}, ErrNotFound
	}
	if post.Closed {
		return post.Clone(), ErrPostClosed
	}
	if err := fields.Validate(); err != nil {
		return post.Clone(), err
	}

	post.Apply(fields, r.now())
	r.persist()
	return post.Clone(), nil
}

// Close marks an open post closed and bumps both counters. Closing an
// already closed post changes nothing and reports false.
func (r *PostRepository) Close(id int64) (models.Post, bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	post, _ := r.find(id)
	if post == nil {
		return models.Post{}, false, ErrNotFound
	}
	if !post.MarkClosed(r.now()) {
		return post.Clone(), false, nil
	}
	r.counters.Closed++
	r.counters.Helped++
	r.persist()
	return post.Clone(), true, nil
}

// Delete removes a post whether open or closed. Counters are kept.
func (r *PostRepository) Delete(id int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, index := r.find(id)
	if index < 0 {
		return ErrNotFound
	}
	r.posts = append(r.posts[:index], r.posts[index+1:]...)
	r.persist()
	return nil
}

// Get returns a deep copy of the post with id.
func (r *PostRepository) Get(id int64) (models.Post, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	post, _ := r.find(id)
	if post == nil {
		return models.Post{}, ErrNotFound
	}
	return post.Clone(), nil
}

// List returns deep copies of all posts in insertion order.
func (r *PostRepository) List() []models.Post {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p.Clone())
	}
	return posts
}

func (r *PostRepository) Counters() models.Counters {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.counters
}

func (r *PostRepository) find(id int64) (*models.Post, int) {
	for i, p := range r.posts {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

// persist writes the collection and counters in one batch. The caller
// holds the lock. A failed write is logged by the store and the in-memory
// state is kept as is.
func (r *PostRepository) persist() bool {
	posts := r.posts
	if posts == nil {
		posts = []*models.Post{}
	}
	return r.store.WriteAll(
		storage.JSON(storage.KeyPosts, posts),
		storage.Int(storage.KeyClosedCount, r.counters.Closed),
		storage.Int(storage.KeyHelpCount, r.counters.Helped),
	)
}
