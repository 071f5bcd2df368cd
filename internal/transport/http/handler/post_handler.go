package handler

import (
	"context"
	"net/http"

	"user-posts-api/internal/domain"
	"user-posts-api/internal/transport/http/ez"
)

type PostHandler struct {
	posts domain.PostStore
}

func NewPostHandler(posts domain.PostStore) *PostHandler { return &PostHandler{posts: posts} }

func (h *PostHandler) Priority() int { return 20 }

func (h *PostHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[struct{}, []postJSON]{
		Method: http.MethodGet, Path: "/posts", Binder: ez.BindNone, Handler: h.list,
	})
	ez.RegisterAction(e, ez.Action[idURI, postJSON]{
		Method: http.MethodGet, Path: "/posts/:id", Binder: ez.BindURI, Handler: h.get,
	})
	ez.RegisterAction(e, ez.Action[createPostIn, postJSON]{
		Method: http.MethodPost, Path: "/posts", Binder: ez.BindJSON, Status: http.StatusCreated, Handler: h.create,
	})
	ez.RegisterAction(e, ez.Action[updatePostIn, postJSON]{
		Method: http.MethodPut, Path: "/update_post", Binder: ez.BindJSON, Handler: h.update,
	})
	ez.RegisterAction(e, ez.Action[idURI, struct{}]{
		Method: http.MethodDelete, Path: "/posts/:id", Binder: ez.BindURI, Status: http.StatusNoContent, Handler: h.delete,
	})

	// 作者关联
	ez.RegisterAction(e, ez.Action[linkAuthorIn, postJSON]{
		Method: http.MethodPut, Path: "/link_post_author", Binder: ez.BindJSON, Handler: h.link,
	})
	ez.RegisterAction(e, ez.Action[idURI, postJSON]{
		Method: http.MethodPut, Path: "/unlink_post_author/:id", Binder: ez.BindURI, Handler: h.unlink,
	})
}

func (h *PostHandler) list(ctx context.Context, _ *struct{}) ([]postJSON, error) {
	ps, err := h.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	return encodePosts(ps), nil
}

func (h *PostHandler) get(ctx context.Context, in *idURI) (postJSON, error) {
	p, err := h.posts.Get(ctx, in.ID)
	if err != nil {
		return postJSON{}, err
	}
	return encodePost(p), nil
}

func (h *PostHandler) create(ctx context.Context, in *createPostIn) (postJSON, error) {
	p, err := h.posts.Create(ctx, *in.Title, in.UserID)
	if err != nil {
		return postJSON{}, err
	}
	return encodePost(p), nil
}

func (h *PostHandler) update(ctx context.Context, in *updatePostIn) (postJSON, error) {
	p, err := h.posts.Update(ctx, *in.ID, *in.Title, in.UserID)
	if err != nil {
		return postJSON{}, err
	}
	return encodePost(p), nil
}

func (h *PostHandler) delete(ctx context.Context, in *idURI) (struct{}, error) {
	return struct{}{}, h.posts.Delete(ctx, in.ID)
}

// link/unlink：SetAuthor 在一个事务里读帖子（不存在 404）再改 user_id
func (h *PostHandler) link(ctx context.Context, in *linkAuthorIn) (postJSON, error) {
	p, err := h.posts.SetAuthor(ctx, *in.PostID, in.UserID)
	if err != nil {
		return postJSON{}, err
	}
	return encodePost(p), nil
}

func (h *PostHandler) unlink(ctx context.Context, in *idURI) (postJSON, error) {
	p, err := h.posts.SetAuthor(ctx, in.ID, nil)
	if err != nil {
		return postJSON{}, err
	}
	return encodePost(p), nil
}
