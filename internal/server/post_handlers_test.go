package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"corkboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func uintPtr(v uint) *uint { return &v }

func doRequest(t *testing.T, app *fiber.App, method, url string, headers ...map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, url, nil)
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreatePost(t *testing.T) {
	t.Run("Anonymous stores a hashed credential", func(t *testing.T) {
		repos, app := newTestServer(t)
		var created *models.Post
		repos.posts.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*models.Post)
				created.ID = 1
			}).Return(nil)

		resp := postJSON(t, app, "/api/posts", map[string]string{
			"title":    "Hello",
			"content":  "World",
			"nickname": "guest",
			"password": "1234",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		require.NotNil(t, created)
		assert.Nil(t, created.AuthorID)
		assert.NotEqual(t, "1234", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("1234")))

		var body models.Post
		decodeBody(t, resp, &body)
		assert.Empty(t, body.Password, "credential hash must not serialize")
	})

	t.Run("Anonymous without credentials 400", func(t *testing.T) {
		_, app := newTestServer(t)

		resp := postJSON(t, app, "/api/posts", map[string]string{
			"title":   "Hello",
			"content": "World",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Member post carries the account identity", func(t *testing.T) {
		repos, app := newTestServer(t)
		var created *models.Post
		repos.posts.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*models.Post)
				created.ID = 2
			}).Return(nil)

		resp := postJSON(t, app, "/api/posts", map[string]string{
			"title":   "Hello",
			"content": "World",
		}, map[string]string{"Authorization": "Bearer " + memberToken(t, 7, "alice")})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		require.NotNil(t, created)
		require.NotNil(t, created.AuthorID)
		assert.Equal(t, uint(7), *created.AuthorID)
		assert.Equal(t, "alice", created.Nickname)
		assert.Empty(t, created.Password)
	})

	t.Run("Invalid token rejected even though anonymous is allowed", func(t *testing.T) {
		_, app := newTestServer(t)

		resp := postJSON(t, app, "/api/posts", map[string]string{
			"title":    "Hello",
			"content":  "World",
			"nickname": "guest",
			"password": "1234",
		}, map[string]string{"Authorization": "Bearer garbage"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetPost(t *testing.T) {
	t.Run("Bumps view counter", func(t *testing.T) {
		repos, app := newTestServer(t)
		repos.posts.On("GetByID", mock.Anything, uint(9)).
			Return(&models.Post{ID: 9, Title: "Post", Nickname: "guest", View: 3}, nil)
		repos.posts.On("IncrementView", mock.Anything, uint(9)).Return(nil)

		resp := doRequest(t, app, http.MethodGet, "/api/posts/9")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Post
		decodeBody(t, resp, &body)
		assert.Equal(t, 4, body.View)
		repos.posts.AssertExpectations(t)
	})

	t.Run("Missing post 404", func(t *testing.T) {
		repos, app := newTestServer(t)
		repos.posts.On("GetByID", mock.Anything, uint(404)).
			Return(nil, models.NewNotFoundError("Post", 404))

		resp := doRequest(t, app, http.MethodGet, "/api/posts/404")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Bad ID 400", func(t *testing.T) {
		_, app := newTestServer(t)
		resp := doRequest(t, app, http.MethodGet, "/api/posts/abc")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPosts(t *testing.T) {
	repos, app := newTestServer(t)
	repos.posts.On("List", mock.Anything, mock.Anything).
		Return([]*models.Post{{ID: 2, Title: "Second"}, {ID: 1, Title: "First"}}, int64(42), nil)

	resp := doRequest(t, app, http.MethodGet, "/api/posts/?page=2&limit=2")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Posts      []json.RawMessage `json:"posts"`
		Total      int64             `json:"total"`
		Page       int               `json:"page"`
		TotalPages int               `json:"total_pages"`
	}
	decodeBody(t, resp, &body)
	assert.Len(t, body.Posts, 2)
	assert.EqualValues(t, 42, body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 21, body.TotalPages)
}

func TestUpdatePost(t *testing.T) {
	anonPost := func() *models.Post {
		return &models.Post{ID: 1, Title: "t", Content: "c", Nickname: "guest", Password: hashedCredential(t, "1234")}
	}
	memberPost := func() *models.Post {
		return &models.Post{ID: 2, Title: "t", Content: "c", AuthorID: uintPtr(7), Nickname: "alice"}
	}

	t.Run("Anonymous with correct password", func(t *testing.T) {
		repos, app := newTestServer(t)
		repos.posts.On("GetByID", mock.Anything, uint(1)).Return(anonPost(), nil)
		repos.posts.On("Update", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/posts/1", jsonBody(t, map[string]string{
			"title":    "edited",
			"content":  "edited",
			"password": "1234",
		}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Anonymous with wrong password 401", func(t *testing.T) {
		repos, app := newTestServer(t)
		repos.posts.On("GetByID", mock.Anything, uint(1)).Return(anonPost(), nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/posts/1", jsonBody(t, map[string]string{
			"title":    "edited",
			"content":  "edited",
			"password": "9999",
		}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Owner member edits own post", func(t *testing.T) {
		repos, app := newTestServer(t)
		repos.posts.On("GetByID", mock.Anything, uint(2)).Return(memberPost(), nil)
		repos.posts.On("Update", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/posts/2", jsonBody(t, map[string]string{
			"title":   "edited",
			"content": "edited",
		}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+memberToken(t, 7, "alice"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Other member 403", func(t *testing.T) {
		repos, app := newTestServer(t)
		repos.posts.On("GetByID", mock.Anything, uint(2)).Return(memberPost(), nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/posts/2", jsonBody(t, map[string]string{
			"title":   "edited",
			"content": "edited",
		}))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+memberToken(t, 8, "bob"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDeletePost(t *testing.T) {
	repos, app := newTestServer(t)
	repos.posts.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5, Nickname: "guest", Password: hashedCredential(t, "1234")}, nil)
	repos.posts.On("Delete", mock.Anything, uint(5)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/5", jsonBody(t, map[string]string{
		"password": "1234",
	}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	repos.posts.AssertExpectations(t)
}

func TestVerifyPostPassword(t *testing.T) {
	repos, app := newTestServer(t)
	repos.posts.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Post{ID: 1, Nickname: "guest", Password: hashedCredential(t, "1234")}, nil)

	resp := postJSON(t, app, "/api/posts/1/verify", map[string]string{"password": "1234"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Valid bool `json:"valid"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Valid)

	resp = postJSON(t, app, "/api/posts/1/verify", map[string]string{"password": "9999"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.False(t, body.Valid)
}
