package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "user-posts-api/internal/transport/http/response"
)

// AccessLog 每个请求一行：路由模板 + 实际路径，方便按接口聚合又能定位到具体 id；
// 失败时带上 action 归类好的错误类型（not_found / store / invalid …）
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", max(c.Writer.Size(), 0)),
			zap.String("ip", c.ClientIP()),
		}
		if kind := c.GetString(resp.KeyErrKind); kind != "" {
			fields = append(fields, zap.String("err_kind", kind))
		}
		// 5xx 的错误详情由 action 通过 c.Error 挂上
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= 500:
			l.Error("HTTP", fields...)
		case status >= 400:
			l.Warn("HTTP", fields...)
		default:
			l.Info("HTTP", fields...)
		}
	}
}
