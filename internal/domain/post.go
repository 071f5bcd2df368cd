package domain

import "context"

// Post posts 表的一行快照；UserID 为 nil 表示无作者
type Post struct {
	ID     int64
	Title  string
	UserID *int64
}

type PostStore interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id int64) (Post, error)
	Create(ctx context.Context, title string, userID *int64) (Post, error)
	Update(ctx context.Context, id int64, title string, userID *int64) (Post, error) // title/user_id 整体覆盖，nil 清空作者
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]Post, error)

	// SetAuthor 保留标题，只替换 user_id（link 传非 nil，unlink 传 nil）
	SetAuthor(ctx context.Context, postID int64, userID *int64) (Post, error)
}
