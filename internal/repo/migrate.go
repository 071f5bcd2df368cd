package repo

import (
	"gorm.io/gorm"

	"user-posts-api/internal/feature/post"
	"user-posts-api/internal/feature/user"
)

// AutoMigrate 建表 / 补列；不建外键约束，引用完整性由 PostRepo 在事务内保证
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.UserModel{}, &post.PostModel{})
}
