package user

import "user-posts-api/internal/domain"

// UserModel users 表。created_at 为文本列，gorm 只自动填充 time/int 类型的
// CreatedAt，所以由 repo 在插入时赋值
type UserModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:text;not null"`
	Email     string `gorm:"type:text;not null"`
	CreatedAt string `gorm:"column:created_at;type:text;not null"`
}

func (UserModel) TableName() string { return "users" }

func (m UserModel) Domain() domain.User {
	return domain.User{ID: m.ID, Name: m.Name, Email: m.Email, CreatedAt: m.CreatedAt}
}
