package repositories

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"helpboard/app/models"
	"helpboard/app/repositories/mock"
	"helpboard/app/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that starts at start and advances one second
// per call.
func fixedClock(start time.Time) Clock {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

var start = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func setupTestPostRepository(t *testing.T) (*PostRepository, *mock.Backend) {
	backend := mock.NewBackend()
	repo := NewPostRepository(storage.NewStore(backend, nil), fixedClock(start))
	repo.Load()
	return repo, backend
}

func alice() models.PostFields {
	return models.PostFields{Name: "Alice", Category: "home", Description: "need groceries", Contact: "555-1111"}
}

func TestPostRepositoryLoad(t *testing.T) {
	t.Run("empty storage", func(t *testing.T) {
		repo, _ := setupTestPostRepository(t)
		assert.Empty(t, repo.List())
		assert.Equal(t, models.Counters{}, repo.Counters())
	})

	t.Run("corrupt posts reset everything", func(t *testing.T) {
		backend := mock.NewBackend()
		backend.Put(storage.KeyPosts, []byte("[{broken"))
		backend.Put(storage.KeyClosedCount, []byte("3"))
		backend.Put(storage.KeyHelpCount, []byte("3"))

		repo := NewPostRepository(storage.NewStore(backend, nil), nil)
		repo.Load()
		assert.Empty(t, repo.List())
		assert.Equal(t, models.Counters{}, repo.Counters())
	})

	t.Run("unreadable backend", func(t *testing.T) {
		backend := mock.NewBackend()
		backend.FailReads = true
		repo := NewPostRepository(storage.NewStore(backend, nil), nil)
		assert.NotPanics(t, repo.Load)
		assert.Empty(t, repo.List())
	})

	t.Run("posts read error resets counters", func(t *testing.T) {
		backend := mock.NewBackend()
		backend.Put(storage.KeyPosts, []byte(`[{"id":1,"name":"Ann","category":"care","description":"walk","contact":"x"}]`))
		backend.Put(storage.KeyClosedCount, []byte("3"))
		backend.Put(storage.KeyHelpCount, []byte("3"))
		backend.FailKey = storage.KeyPosts

		repo := NewPostRepository(storage.NewStore(backend, nil), nil)
		repo.Load()
		assert.Empty(t, repo.List())
		assert.Equal(t, models.Counters{}, repo.Counters())
	})

	t.Run("counters without posts", func(t *testing.T) {
		backend := mock.NewBackend()
		backend.Put(storage.KeyClosedCount, []byte("2"))
		backend.Put(storage.KeyHelpCount, []byte("5"))
		repo := NewPostRepository(storage.NewStore(backend, nil), nil)
		repo.Load()
		assert.Equal(t, models.Counters{Closed: 2, Helped: 5}, repo.Counters())
	})

	t.Run("posts written by the browser app", func(t *testing.T) {
		backend := mock.NewBackend()
		backend.Put(storage.KeyPosts, []byte(`[{"name":"Ann","category":"care","description":"walk dog","contact":"ann@x.io","categoryLabel":"Care & Support","id":1714550400000,"timestamp":"2024-05-01T08:00:00.000Z"}]`))
		repo := NewPostRepository(storage.NewStore(backend, nil), nil)
		repo.Load()

		posts := repo.List()
		require.Len(t, posts, 1)
		assert.Equal(t, int64(1714550400000), posts[0].ID)
		assert.False(t, posts[0].Closed)
		assert.True(t, posts[0].Timestamp.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)))
	})
}

func TestPostRepositoryCreate(t *testing.T) {
	repo, backend := setupTestPostRepository(t)

	t.Run("valid post", func(t *testing.T) {
		post, err := repo.Create(alice())
		require.NoError(t, err)
		assert.NotZero(t, post.ID)
		assert.Equal(t, "Home & Errands", post.CategoryLabel)
		assert.Equal(t, start, post.Timestamp)
		assert.False(t, post.Closed)
		assert.Equal(t, 1, backend.Writes)
	})

	t.Run("invalid fields leave state alone", func(t *testing.T) {
		writes := backend.Writes
		_, err := repo.Create(models.PostFields{Name: "Bob", Category: "home", Description: "  "})
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Len(t, repo.List(), 1)
		assert.Equal(t, writes, backend.Writes)
	})

	t.Run("ids are unique within the same millisecond", func(t *testing.T) {
		frozen := NewPostRepository(storage.NewStore(mock.NewBackend(), nil), func() time.Time { return start })
		seen := make(map[int64]bool)
		for i := 0; i < 50; i++ {
			post, err := frozen.Create(alice())
			require.NoError(t, err)
			assert.False(t, seen[post.ID], "duplicate id %d", post.ID)
			seen[post.ID] = true
		}
	})
}

func TestPostRepositoryRoundTrip(t *testing.T) {
	backend := mock.NewBackend()
	store := storage.NewStore(backend, nil)
	repo := NewPostRepository(store, fixedClock(start))
	repo.Load()

	created, err := repo.Create(models.PostFields{Name: "Alice", Category: "learning", Description: "help with email", Contact: "555-1111"})
	require.NoError(t, err)
	_, err = repo.Create(alice())
	require.NoError(t, err)
	_, _, err = repo.Close(created.ID)
	require.NoError(t, err)

	reloaded := NewPostRepository(store, nil)
	reloaded.Load()

	assert.Equal(t, repo.List(), reloaded.List())
	assert.Equal(t, models.Counters{Closed: 1, Helped: 1}, reloaded.Counters())

	got, err := reloaded.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learning & Tech", got.CategoryLabel)

	// Reloaded repositories keep generating fresh ids.
	next, err := reloaded.Create(alice())
	require.NoError(t, err)
	for _, p := range repo.List() {
		assert.Greater(t, next.ID, p.ID)
	}

	assert.Equal(t, []byte("1"), backend.Raw(storage.KeyClosedCount))
	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(backend.Raw(storage.KeyPosts), &raw))
	assert.Equal(t, "Learning & Tech", raw[0]["categoryLabel"])
	assert.Equal(t, true, raw[0]["closed"])
	_, hasClosed := raw[1]["closed"]
	assert.False(t, hasClosed)
}

func TestPostRepositoryUpdate(t *testing.T) {
	repo, _ := setupTestPostRepository(t)
	post, err := repo.Create(alice())
	require.NoError(t, err)

	t.Run("open post", func(t *testing.T) {
		updated, err := repo.Update(post.ID, models.PostFields{Name: "Alice B", Category: "care", Description: "ride to clinic", Contact: "555-2222"})
		require.NoError(t, err)
		assert.Equal(t, "Alice B", updated.Name)
		assert.Equal(t, "Care & Support", updated.CategoryLabel)
		assert.Equal(t, post.Timestamp, updated.Timestamp)
		require.NotNil(t, updated.EditedAt)
		assert.True(t, updated.EditedAt.After(post.Timestamp))
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := repo.Update(post.ID, models.PostFields{Name: "x"})
		assert.ErrorIs(t, err, models.ErrValidation)
		got, _ := repo.Get(post.ID)
		assert.Equal(t, "Alice B", got.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Update(999, alice())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("closed post", func(t *testing.T) {
		_, _, err := repo.Close(post.ID)
		require.NoError(t, err)
		_, err = repo.Update(post.ID, alice())
		assert.ErrorIs(t, err, ErrPostClosed)
		got, _ := repo.Get(post.ID)
		assert.Equal(t, "Alice B", got.Name)
	})
}

func TestPostRepositoryCloseIsMonotonic(t *testing.T) {
	repo, backend := setupTestPostRepository(t)
	post, err := repo.Create(alice())
	require.NoError(t, err)

	closed, changed, err := repo.Close(post.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, closed.Closed)
	require.NotNil(t, closed.ClosedAt)
	firstClosedAt := *closed.ClosedAt
	writes := backend.Writes

	again, changed, err := repo.Close(post.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, firstClosedAt, *again.ClosedAt)
	assert.Equal(t, models.Counters{Closed: 1, Helped: 1}, repo.Counters())
	assert.Equal(t, writes, backend.Writes)

	_, _, err = repo.Close(12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepositoryDelete(t *testing.T) {
	repo, _ := setupTestPostRepository(t)
	first, _ := repo.Create(alice())
	second, _ := repo.Create(alice())
	third, _ := repo.Create(alice())

	_, _, err := repo.Close(second.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(second.ID))

	posts := repo.List()
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, third.ID, posts[1].ID)
	assert.Equal(t, models.Counters{Closed: 1, Helped: 1}, repo.Counters())

	assert.ErrorIs(t, repo.Delete(second.ID), ErrNotFound)
}

func TestPostRepositoryStorageFailureKeepsMemoryState(t *testing.T) {
	repo, backend := setupTestPostRepository(t)
	backend.FailWrites = true

	post, err := repo.Create(alice())
	require.NoError(t, err)
	_, changed, err := repo.Close(post.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Len(t, repo.List(), 1)
	assert.Equal(t, models.Counters{Closed: 1, Helped: 1}, repo.Counters())
	assert.Nil(t, backend.Raw(storage.KeyPosts))
}

func TestPostRepositoryListReturnsCopies(t *testing.T) {
	repo, _ := setupTestPostRepository(t)
	post, _ := repo.Create(alice())

	posts := repo.List()
	posts[0].Name = "mutated"

	got, err := repo.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.False(t, errors.Is(err, ErrNotFound))

	closed, changed, err := repo.Close(post.ID)
	require.NoError(t, err)
	require.True(t, changed)
	closedAt := *closed.ClosedAt

	*closed.ClosedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	*repo.List()[0].ClosedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	fetched, _ := repo.Get(post.ID)
	*fetched.ClosedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err = repo.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, closedAt, *got.ClosedAt)
}
