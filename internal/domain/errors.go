package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound 可用 errors.Is 匹配任意 *NotFoundError
var ErrNotFound = errors.New("not found")

// NotFoundError 按 id 查询无结果
type NotFoundError struct {
	Entity string // "user" | "post"
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("couldn't find such a %s with id %d", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StoreError 存储层的其它失败：约束冲突、连接断开、连接池耗尽等
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
