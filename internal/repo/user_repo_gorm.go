package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"user-posts-api/internal/domain"
	"user-posts-api/internal/feature/post"
	"user-posts-api/internal/feature/user"
)

type UserRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db, now: time.Now} }

// WithClock 替换 created_at 的时间来源
func (r *UserRepo) WithClock(now func() time.Time) *UserRepo {
	r.now = now
	return r
}

var _ domain.UserStore = (*UserRepo)(nil)

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var ms []user.UserModel
	if err := r.db.WithContext(ctx).Order("id").Find(&ms).Error; err != nil {
		return nil, storeErr("list users", err)
	}
	out := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Domain())
	}
	return out, nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (domain.User, error) {
	m, err := findUser(r.db.WithContext(ctx), id)
	if err != nil {
		return domain.User{}, storeErr("get user", err)
	}
	return m.Domain(), nil
}

func (r *UserRepo) GetWithPosts(ctx context.Context, id int64) (domain.User, []domain.Post, error) {
	var (
		um user.UserModel
		pm []post.PostModel
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if um, err = findUser(tx, id); err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Order("id").Find(&pm).Error
	})
	if err != nil {
		return domain.User{}, nil, storeErr("get user with posts", err)
	}
	return um.Domain(), toPosts(pm), nil
}

func (r *UserRepo) Create(ctx context.Context, name, email string) (domain.User, error) {
	m := user.UserModel{
		Name:      name,
		Email:     email,
		CreatedAt: r.now().Format(domain.CreatedAtLayout),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.User{}, storeErr("create user", err)
	}
	return m.Domain(), nil
}

// Update 存在性检查 + 覆盖写 + 回读 放在同一事务里
func (r *UserRepo) Update(ctx context.Context, id int64, name, email string) (domain.User, error) {
	var out user.UserModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, id); err != nil {
			return err
		}
		err := tx.Model(&user.UserModel{}).
			Where("id = ?", id).
			Updates(map[string]any{"name": name, "email": email}).Error
		if err != nil {
			return err
		}
		out, err = findUser(tx, id)
		return err
	})
	if err != nil {
		return domain.User{}, storeErr("update user", err)
	}
	return out.Domain(), nil
}

// Delete 幂等；先把该用户的帖子 user_id 置 NULL，避免悬空引用
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&post.PostModel{}).
			Where("user_id = ?", id).
			Update("user_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&user.UserModel{}).Error
	})
	return storeErr("delete user", err)
}

func findUser(tx *gorm.DB, id int64) (user.UserModel, error) {
	var m user.UserModel
	err := tx.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, &domain.NotFoundError{Entity: "user", ID: id}
	}
	return m, err
}
