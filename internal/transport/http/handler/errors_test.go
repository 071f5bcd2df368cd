package handler_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"user-posts-api/internal/domain"
)

// failingStore 所有调用都返回 StoreError
type failingStore struct{ err error }

func (f failingStore) fail(op string) error { return &domain.StoreError{Op: op, Err: f.err} }

func (f failingStore) List(context.Context) ([]domain.User, error) { return nil, f.fail("list users") }
func (f failingStore) Get(context.Context, int64) (domain.User, error) {
	return domain.User{}, f.fail("get user")
}
func (f failingStore) Create(context.Context, string, string) (domain.User, error) {
	return domain.User{}, f.fail("create user")
}
func (f failingStore) Update(context.Context, int64, string, string) (domain.User, error) {
	return domain.User{}, f.fail("update user")
}
func (f failingStore) Delete(context.Context, int64) error { return f.fail("delete user") }
func (f failingStore) GetWithPosts(context.Context, int64) (domain.User, []domain.Post, error) {
	return domain.User{}, nil, f.fail("get user with posts")
}

type failingPosts struct{ failingStore }

func (f failingPosts) List(context.Context) ([]domain.Post, error) { return nil, f.fail("list posts") }
func (f failingPosts) Get(context.Context, int64) (domain.Post, error) {
	return domain.Post{}, f.fail("get post")
}
func (f failingPosts) Create(context.Context, string, *int64) (domain.Post, error) {
	return domain.Post{}, f.fail("create post")
}
func (f failingPosts) Update(context.Context, int64, string, *int64) (domain.Post, error) {
	return domain.Post{}, f.fail("update post")
}
func (f failingPosts) ListByUser(context.Context, int64) ([]domain.Post, error) {
	return nil, f.fail("list posts by user")
}
func (f failingPosts) SetAuthor(context.Context, int64, *int64) (domain.Post, error) {
	return domain.Post{}, f.fail("set post author")
}

func TestStoreErrorsMapTo500(t *testing.T) {
	cause := errors.New("database is locked")
	h := newEngine(t, failingStore{err: cause}, failingPosts{failingStore{err: cause}})

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/users", ""},
		{http.MethodGet, "/users/1", ""},
		{http.MethodPost, "/users", `{"name":"a","email":"b"}`},
		{http.MethodPut, "/users", `{"id":1,"name":"a","email":"b"}`},
		{http.MethodDelete, "/users/1", ""},
		{http.MethodGet, "/posts", ""},
		{http.MethodPost, "/posts", `{"title":"x"}`},
		{http.MethodDelete, "/posts/1", ""},
		{http.MethodGet, "/user_with_posts/1", ""},
		{http.MethodGet, "/users_posts/1", ""},
		{http.MethodPut, "/update_post", `{"id":1,"title":"x"}`},
		{http.MethodPut, "/link_post_author", `{"post_id":1,"user_id":1}`},
		{http.MethodPut, "/unlink_post_author/1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(t, h, tc.method, tc.path, tc.body)
			expectStatus(t, w, http.StatusInternalServerError)
			if strings.Contains(w.Body.String(), cause.Error()) {
				t.Errorf("Internal detail leaked into body: %q", w.Body.String())
			}
		})
	}
}
