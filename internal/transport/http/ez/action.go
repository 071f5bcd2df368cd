// Package ez 用 Action 一行注册接口：绑定入参 → 在阻塞执行池上跑 handler → 统一映射结果
package ez

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-posts-api/internal/core/blocking"
	resp "user-posts-api/internal/transport/http/response"
)

type EZ struct {
	g    *gin.RouterGroup
	pool *blocking.Pool
	log  *zap.Logger
}

func New(g *gin.RouterGroup, pool *blocking.Pool, l *zap.Logger) EZ {
	return EZ{g: g, pool: pool, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 从 JSON body 绑定
	BindURI  Binder = "uri"  // 从路径参数绑定（`uri:"id"`）
	BindNone Binder = "none" // 不绑定
)

// AErr 边界层错误（入参校验等），Code 即 HTTP 状态码
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: http.StatusBadRequest, Msg: msg} }

// Action I 入参，O 出参。Handler 运行在阻塞执行池上，只能用 ctx，不能碰 gin.Context
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/users/:id"
	Binder  Binder
	Status  int // 成功状态码，默认 200；204 时不写 body
	Handler func(ctx context.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		// 1) 绑定入参（在请求 goroutine 上完成，失败不触达存储）
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindURI:
			bindErr = c.ShouldBindUri(&in)
		default: // BindNone
		}
		if bindErr != nil {
			e.fail(c, &AErr{Code: http.StatusBadRequest, Msg: bindMessage(bindErr), Err: bindErr})
			return
		}

		// 2) 存储调用挪到阻塞执行池
		out, err := blocking.Do(c.Request.Context(), e.pool, func(ctx context.Context) (O, error) {
			return a.Handler(ctx, &in)
		})
		if err != nil {
			e.fail(c, err)
			return
		}

		// 3) 成功
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// fail 统一错误映射
func (e EZ) fail(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		c.Set(resp.KeyErrKind, "invalid")
		e.log.Debug("request rejected", zap.Int("status", ae.Code), zap.Error(err))
		resp.Abort(c, ae.Code, ae.Error())
		return
	}
	c.Set(resp.KeyErrKind, resp.Kind(err))
	code, msg := resp.FromError(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		e.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	resp.Abort(c, code, msg)
}

func bindMessage(err error) string {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return "request body too large"
	}
	return err.Error()
}
