package handler

import (
	"context"
	"net/http"

	"user-posts-api/internal/domain"
	"user-posts-api/internal/transport/http/ez"
)

type UserHandler struct {
	users domain.UserStore
}

func NewUserHandler(users domain.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[struct{}, []userJSON]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindNone, Handler: h.list,
	})
	ez.RegisterAction(e, ez.Action[idURI, userJSON]{
		Method: http.MethodGet, Path: "/users/:id", Binder: ez.BindURI, Handler: h.get,
	})
	ez.RegisterAction(e, ez.Action[createUserIn, userJSON]{
		Method: http.MethodPost, Path: "/users", Binder: ez.BindJSON, Status: http.StatusCreated, Handler: h.create,
	})
	ez.RegisterAction(e, ez.Action[updateUserIn, userJSON]{
		Method: http.MethodPut, Path: "/users", Binder: ez.BindJSON, Handler: h.update,
	})
	ez.RegisterAction(e, ez.Action[idURI, struct{}]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: ez.BindURI, Status: http.StatusNoContent, Handler: h.delete,
	})

	// 组合查询：用户 + 其帖子 / 仅帖子（用户不存在均 404），一次读事务
	ez.RegisterAction(e, ez.Action[idURI, userWithPostsJSON]{
		Method: http.MethodGet, Path: "/user_with_posts/:id", Binder: ez.BindURI, Handler: h.withPosts,
	})
	ez.RegisterAction(e, ez.Action[idURI, postsJSON]{
		Method: http.MethodGet, Path: "/users_posts/:id", Binder: ez.BindURI, Handler: h.postsOf,
	})
}

func (h *UserHandler) list(ctx context.Context, _ *struct{}) ([]userJSON, error) {
	us, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return encodeUsers(us), nil
}

func (h *UserHandler) get(ctx context.Context, in *idURI) (userJSON, error) {
	u, err := h.users.Get(ctx, in.ID)
	if err != nil {
		return userJSON{}, err
	}
	return encodeUser(u), nil
}

func (h *UserHandler) create(ctx context.Context, in *createUserIn) (userJSON, error) {
	u, err := h.users.Create(ctx, *in.Name, *in.Email)
	if err != nil {
		return userJSON{}, err
	}
	return encodeUser(u), nil
}

func (h *UserHandler) update(ctx context.Context, in *updateUserIn) (userJSON, error) {
	u, err := h.users.Update(ctx, *in.ID, *in.Name, *in.Email)
	if err != nil {
		return userJSON{}, err
	}
	return encodeUser(u), nil
}

func (h *UserHandler) delete(ctx context.Context, in *idURI) (struct{}, error) {
	return struct{}{}, h.users.Delete(ctx, in.ID)
}

func (h *UserHandler) withPosts(ctx context.Context, in *idURI) (userWithPostsJSON, error) {
	u, ps, err := h.users.GetWithPosts(ctx, in.ID)
	if err != nil {
		return userWithPostsJSON{}, err
	}
	return userWithPostsJSON{User: encodeUser(u), Posts: encodePosts(ps)}, nil
}

func (h *UserHandler) postsOf(ctx context.Context, in *idURI) (postsJSON, error) {
	_, ps, err := h.users.GetWithPosts(ctx, in.ID)
	if err != nil {
		return postsJSON{}, err
	}
	return postsJSON{Posts: encodePosts(ps)}, nil
}
