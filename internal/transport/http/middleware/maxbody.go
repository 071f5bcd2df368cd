package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "user-posts-api/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小：声明长度超限直接 400；
// 未声明长度（chunked）时由 MaxBytesReader 截断，JSON 绑定失败后同样 400
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Abort(c, http.StatusBadRequest, "request body too large")
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
