package post

import "user-posts-api/internal/domain"

type PostModel struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Title  string `gorm:"type:text;not null"`
	UserID *int64 `gorm:"index"`
}

func (PostModel) TableName() string { return "posts" }

func (m PostModel) Domain() domain.Post {
	p := domain.Post{ID: m.ID, Title: m.Title}
	if m.UserID != nil {
		uid := *m.UserID
		p.UserID = &uid
	}
	return p
}
