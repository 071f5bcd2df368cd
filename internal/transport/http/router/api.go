package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"user-posts-api/internal/core/blocking"
	"user-posts-api/internal/core/database"
	"user-posts-api/internal/core/server"
	"user-posts-api/internal/transport/http/ez"
	mdw "user-posts-api/internal/transport/http/middleware"
	resp "user-posts-api/internal/transport/http/response"
)

type Options struct {
	Log            *zap.Logger
	DB             *gorm.DB // 健康检查用
	Pool           *blocking.Pool
	Modules        []APIModule
	BodyLimit      int64
	RequestTimeout time.Duration
	RateLimitRPS   float64 // <= 0 关闭
	RateLimitBurst int
}

func NewAPIEngine(o Options) *gin.Engine {
	r := server.NewRouter(o.Log)

	// 中间件：访问日志/指标放最外层，限流、超限 body 的拒绝也能记到
	mws := []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.AccessLog(o.Log),
		mdw.Metrics(),
	}
	if o.RateLimitRPS > 0 {
		mws = append(mws, mdw.RateLimit(rate.Limit(o.RateLimitRPS), max(o.RateLimitBurst, 1)))
	}
	mws = append(mws,
		mdw.MaxBodyBytes(o.BodyLimit),
		mdw.Timeout(o.RequestTimeout),
	)
	r.Use(mws...)

	// 健康检查（探活同样走阻塞执行池）
	r.GET("/health", func(c *gin.Context) {
		_, err := blocking.Do(c.Request.Context(), o.Pool, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, database.Ping(ctx, o.DB)
		})
		if err != nil {
			o.Log.Warn("health check failed", zap.Error(err))
			resp.Abort(c, http.StatusServiceUnavailable, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	MountAll(ez.New(&r.RouterGroup, o.Pool, o.Log), o.Modules...)
	return r
}
