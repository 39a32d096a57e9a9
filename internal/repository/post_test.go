package repository

import (
	"context"
	"regexp"
	"testing"

	"corkboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Title: "Test Post", Content: "Content", Nickname: "guest"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Anonymous post", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "nickname", "author_id"}).
				AddRow(1, "Post 1", "guest", nil))

		post, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Post 1", post.Title)
		assert.Nil(t, post.AuthorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Member post preloads author", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(2, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "nickname", "author_id"}).
				AddRow(2, "Post 2", "alice", 10))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "nickname"}).AddRow(10, "alice"))

		post, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, post.Author)
		assert.Equal(t, "alice", post.Author.Nickname)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(404, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		post, err := repo.GetByID(ctx, 404)
		assert.Nil(t, post)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "nickname"}).
			AddRow(2, "Second", "guest").
			AddRow(1, "First", "guest"))

	posts, total, err := repo.List(ctx, ListParams{Sort: "created_at", Order: "desc", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, posts, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_List_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE title ILIKE $1 OR content ILIKE $2 OR nickname ILIKE $3`)).
		WithArgs("%needle%", "%needle%", "%needle%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE title ILIKE $1 OR content ILIKE $2 OR nickname ILIKE $3`)).
		WithArgs("%needle%", "%needle%", "%needle%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "nickname"}).
			AddRow(1, "needle in a haystack", "guest"))

	posts, total, err := repo.List(ctx, ListParams{Search: "needle", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_IncrementView(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "view"=view + $1 WHERE id = $2`)).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.IncrementView(context.Background(), 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "posts" WHERE "posts"."id" = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort     string
		order    string
		expected string
	}{
		{"created_at", "desc", "created_at DESC, id DESC"},
		{"view", "asc", "view ASC, id ASC"},
		{"comment_count", "desc", "comment_count DESC, id DESC"},
		{"title", "ASC", "title ASC, id ASC"},
		{"password", "desc", "created_at DESC, id DESC"},
		{"", "", "created_at DESC, id DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, orderClause(tt.sort, tt.order))
	}
}
