package domain

import "context"

// CreatedAtLayout User.CreatedAt 的文本格式（本地时间）
const CreatedAtLayout = "2006-01-02 15:04:05.000000"

// User users 表的一行快照
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt string
}

type UserStore interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, name, email string) (User, error)
	Update(ctx context.Context, id int64, name, email string) (User, error) // name/email 整体覆盖
	Delete(ctx context.Context, id int64) error                              // 幂等；其帖子 user_id 置 NULL
	// GetWithPosts 在同一个读事务里取用户及其帖子，两者来自同一快照
	GetWithPosts(ctx context.Context, id int64) (User, []Post, error)
}
