package repo

import (
	"errors"

	"user-posts-api/internal/domain"
)

// storeErr 404 原样返回，其余包成 *domain.StoreError；gorm.ErrRecordNotFound 不外泄
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf
	}
	return &domain.StoreError{Op: op, Err: err}
}
