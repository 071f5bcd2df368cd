package handler

import "user-posts-api/internal/domain"

// 出参：每个实体一个显式的 JSON 结构，字段名即对外契约

type userJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type postJSON struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	UserID *int64 `json:"user_id"` // 无作者时输出 null
}

type userWithPostsJSON struct {
	User  userJSON   `json:"user"`
	Posts []postJSON `json:"posts"`
}

type postsJSON struct {
	Posts []postJSON `json:"posts"`
}

func encodeUser(u domain.User) userJSON {
	return userJSON{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func encodeUsers(us []domain.User) []userJSON {
	out := make([]userJSON, 0, len(us))
	for _, u := range us {
		out = append(out, encodeUser(u))
	}
	return out
}

func encodePost(p domain.Post) postJSON {
	out := postJSON{ID: p.ID, Title: p.Title}
	if p.UserID != nil {
		uid := *p.UserID
		out.UserID = &uid
	}
	return out
}

func encodePosts(ps []domain.Post) []postJSON {
	out := make([]postJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, encodePost(p))
	}
	return out
}

// 入参：必填字段用指针 + required，只校验“出现过”，不限制取值（空串、0、负数都交给存储层判断）

type idURI struct {
	ID int64 `uri:"id"`
}

type createUserIn struct {
	Name  *string `json:"name"  binding:"required"`
	Email *string `json:"email" binding:"required"`
}

type updateUserIn struct {
	ID    *int64  `json:"id"    binding:"required"`
	Name  *string `json:"name"  binding:"required"`
	Email *string `json:"email" binding:"required"`
}

type createPostIn struct {
	Title  *string `json:"title" binding:"required"`
	UserID *int64  `json:"user_id"`
}

type updatePostIn struct {
	ID     *int64  `json:"id"    binding:"required"`
	Title  *string `json:"title" binding:"required"`
	UserID *int64  `json:"user_id"`
}

type linkAuthorIn struct {
	PostID *int64 `json:"post_id" binding:"required"`
	UserID *int64 `json:"user_id" binding:"required"`
}
