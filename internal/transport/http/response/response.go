package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-posts-api/internal/core/blocking"
	"user-posts-api/internal/domain"
)

// FromError 把存储层错误映射为 HTTP 状态码 + 可读文案：
// NotFound → 404（带 id），其余（StoreError、执行池饱和、未知错误）→ 500。
// 500 的文案不带内部细节，细节走日志
func FromError(err error) (int, string) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound, nf.Error()
	}
	return http.StatusInternalServerError, CodeMsgMap[http.StatusInternalServerError]
}

// Abort 以纯文本写出错误并终止后续 handler；msg 为空时用默认文案
func Abort(c *gin.Context, code int, msg string) {
	if msg == "" {
		msg = CodeMsgMap[code]
	}
	c.Abort()
	c.String(code, msg)
}

// KeyErrKind gin.Context 里记录错误归类的 key，访问日志读取
const KeyErrKind = "err_kind"

// Kind 把错误归到几个固定类别，日志里按类别检索
func Kind(err error) string {
	var (
		nf *domain.NotFoundError
		se *domain.StoreError
		pe *blocking.PanicError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &se):
		return "store"
	case errors.Is(err, blocking.ErrSaturated):
		return "saturated"
	case errors.As(err, &pe):
		return "panic"
	default:
		return "internal"
	}
}
