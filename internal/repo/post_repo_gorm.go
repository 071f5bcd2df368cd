package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"user-posts-api/internal/domain"
	"user-posts-api/internal/feature/post"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

var _ domain.PostStore = (*PostRepo)(nil)

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	var ms []post.PostModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, storeErr("list posts", err)
	}
	return toPosts(ms), nil
}

func (r *PostRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	var ms []post.PostModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&ms).Error
	if err != nil {
		return nil, storeErr("list posts by user", err)
	}
	return toPosts(ms), nil
}

func (r *PostRepo) Get(ctx context.Context, id int64) (domain.Post, error) {
	m, err := findPost(r.db.WithContext(ctx), id)
	if err != nil {
		return domain.Post{}, storeErr("get post", err)
	}
	return m.Domain(), nil
}

func (r *PostRepo) Create(ctx context.Context, title string, userID *int64) (domain.Post, error) {
	m := post.PostModel{Title: title, UserID: userID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return domain.Post{}, storeErr("create post", err)
	}
	return m.Domain(), nil
}

func (r *PostRepo) Update(ctx context.Context, id int64, title string, userID *int64) (domain.Post, error) {
	var out post.PostModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findPost(tx, id); err != nil {
			return err
		}
		var err error
		out, err = writePost(tx, id, title, userID)
		return err
	})
	if err != nil {
		return domain.Post{}, storeErr("update post", err)
	}
	return out.Domain(), nil
}

func (r *PostRepo) SetAuthor(ctx context.Context, postID int64, userID *int64) (domain.Post, error) {
	var out post.PostModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := findPost(tx, postID)
		if err != nil {
			return err
		}
		out, err = writePost(tx, cur.ID, cur.Title, userID)
		return err
	})
	if err != nil {
		return domain.Post{}, storeErr("set post author", err)
	}
	return out.Domain(), nil
}

// Delete 幂等：不存在的 id 也返回 nil
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&post.PostModel{}).Error
	return storeErr("delete post", err)
}

// writePost 覆盖 title 与 user_id 后回读；调用方须已确认帖子存在
func writePost(tx *gorm.DB, id int64, title string, userID *int64) (post.PostModel, error) {
	if err := requireUser(tx, userID); err != nil {
		return post.PostModel{}, err
	}
	var uid any // nil interface → NULL
	if userID != nil {
		uid = *userID
	}
	err := tx.Model(&post.PostModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "user_id": uid}).Error
	if err != nil {
		return post.PostModel{}, err
	}
	return findPost(tx, id)
}

// requireUser 非空 user_id 必须指向已存在的用户（SQLite 默认不校验外键，这里显式查）
func requireUser(tx *gorm.DB, userID *int64) error {
	if userID == nil {
		return nil
	}
	_, err := findUser(tx, *userID)
	return err
}

func findPost(tx *gorm.DB, id int64) (post.PostModel, error) {
	var m post.PostModel
	err := tx.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, &domain.NotFoundError{Entity: "post", ID: id}
	}
	return m, err
}

func toPosts(ms []post.PostModel) []domain.Post {
	out := make([]domain.Post, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Domain())
	}
	return out
}
