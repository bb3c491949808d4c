package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/resource-saver/internal/database"
)

var errUnknown = errors.New("unknown error")

const testSchema = `CREATE TABLE resources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL CHECK (length(title) > 0),
	url TEXT NOT NULL UNIQUE CHECK (length(url) > 0),
	type TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// setupResourceRepository opens an in-memory database with the resources
// schema applied. A single connection keeps every call on the same database.
func setupResourceRepository(t testing.TB) *ResourceRepository {
	t.Helper()

	db, err := sqlx.Connect("sqlite", "file::memory:?_time_format=sqlite")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		db.Close()
	})

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	return NewResourceRepository(db)
}

func setupMockResourceRepository(t testing.TB) (*ResourceRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}

	db := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewResourceRepository(db)

	t.Cleanup(func() {
		mockDB.Close()
		db.Close()
	})

	return repo, mock
}

func TestResourceRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := setupResourceRepository(t)

		resource, err := repo.Create(context.TODO(), "Intro to Rust", "https://example.com/rust", "article")

		require.NoError(t, err)
		require.NotNil(t, resource)
		assert.Equal(t, int64(1), resource.ID)
		assert.Equal(t, "Intro to Rust", resource.Title)
		assert.Equal(t, "https://example.com/rust", resource.URL)
		assert.Equal(t, "article", resource.Type)
		assert.WithinDuration(t, time.Now().UTC(), resource.CreatedAt, 5*time.Second)
	})

	t.Run("duplicate url", func(t *testing.T) {
		repo := setupResourceRepository(t)

		_, err := repo.Create(context.TODO(), "Intro to Rust", "https://example.com/rust", "article")
		require.NoError(t, err)

		resource, err := repo.Create(context.TODO(), "Same page again", "https://example.com/rust", "tool")

		assert.Error(t, err)
		assert.ErrorIs(t, err, database.ErrResourceExists)
		assert.Nil(t, resource)

		resources, err := repo.List(context.TODO())
		require.NoError(t, err)
		assert.Len(t, resources, 1)
	})

	t.Run("empty title or url never reaches the table", func(t *testing.T) {
		repo := setupResourceRepository(t)

		resource, err := repo.Create(context.TODO(), "", "https://example.com/rust", "article")

		assert.Error(t, err)
		assert.Nil(t, resource)

		resource, err = repo.Create(context.TODO(), "Intro to Rust", "", "article")

		assert.Error(t, err)
		assert.Nil(t, resource)

		resources, err := repo.List(context.TODO())
		require.NoError(t, err)
		assert.Empty(t, resources)
	})

	t.Run("ids are never reused", func(t *testing.T) {
		repo := setupResourceRepository(t)

		first, err := repo.Create(context.TODO(), "A", "https://example.com/a", "article")
		require.NoError(t, err)
		second, err := repo.Create(context.TODO(), "B", "https://example.com/b", "article")
		require.NoError(t, err)

		removed, err := repo.Delete(context.TODO(), second.ID)
		require.NoError(t, err)
		require.True(t, removed)

		third, err := repo.Create(context.TODO(), "C", "https://example.com/c", "article")
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
		assert.Equal(t, int64(3), third.ID)
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupMockResourceRepository(t)

		mock.ExpectQuery(`INSERT INTO resources`).
			WithArgs("Intro to Rust", "https://example.com/rust", "article", sqlmock.AnyArg()).
			WillReturnError(errUnknown)

		resource, err := repo.Create(context.TODO(), "Intro to Rust", "https://example.com/rust", "article")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, resource)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_List(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		repo := setupResourceRepository(t)

		resources, err := repo.List(context.TODO())

		assert.NoError(t, err)
		assert.NotNil(t, resources)
		assert.Empty(t, resources)
	})

	t.Run("insertion order", func(t *testing.T) {
		repo := setupResourceRepository(t)

		for _, title := range []string{"A", "B", "C"} {
			_, err := repo.Create(context.TODO(), title, "https://example.com/"+title, "article")
			require.NoError(t, err)
		}

		resources, err := repo.List(context.TODO())

		require.NoError(t, err)
		require.Len(t, resources, 3)
		assert.Equal(t, "A", resources[0].Title)
		assert.Equal(t, "B", resources[1].Title)
		assert.Equal(t, "C", resources[2].Title)
		assert.Less(t, resources[0].ID, resources[1].ID)
		assert.Less(t, resources[1].ID, resources[2].ID)
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupMockResourceRepository(t)

		mock.ExpectQuery(`SELECT \* FROM resources`).
			WillReturnError(errUnknown)

		resources, err := repo.List(context.TODO())

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, resources)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_Delete(t *testing.T) {
	t.Run("removes the record", func(t *testing.T) {
		repo := setupResourceRepository(t)

		first, err := repo.Create(context.TODO(), "A", "https://example.com/a", "article")
		require.NoError(t, err)
		second, err := repo.Create(context.TODO(), "B", "https://example.com/b", "article")
		require.NoError(t, err)

		removed, err := repo.Delete(context.TODO(), first.ID)

		assert.NoError(t, err)
		assert.True(t, removed)

		resources, err := repo.List(context.TODO())
		require.NoError(t, err)
		require.Len(t, resources, 1)
		assert.Equal(t, second.ID, resources[0].ID)
	})

	t.Run("nothing removed", func(t *testing.T) {
		repo := setupResourceRepository(t)

		first, err := repo.Create(context.TODO(), "A", "https://example.com/a", "article")
		require.NoError(t, err)

		removed, err := repo.Delete(context.TODO(), first.ID)
		require.NoError(t, err)
		require.True(t, removed)

		removed, err = repo.Delete(context.TODO(), first.ID)

		assert.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupMockResourceRepository(t)

		mock.ExpectExec(`DELETE FROM resources`).
			WithArgs(int64(1)).
			WillReturnError(errUnknown)

		removed, err := repo.Delete(context.TODO(), 1)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.False(t, removed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
