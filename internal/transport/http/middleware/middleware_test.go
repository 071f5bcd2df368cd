package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	resp "user-posts-api/internal/transport/http/response"
)

func newTestEngine(mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mws...)
	return r
}

func TestRequestID(t *testing.T) {
	r := newTestEngine(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(KeyRequestID)
	if generated == "" || w.Body.String() != generated {
		t.Errorf("expected generated id echoed, header %q body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(KeyRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(KeyRequestID) != "abc" {
		t.Errorf("expected incoming id kept, got %q", w.Header().Get(KeyRequestID))
	}

	for _, bad := range []string{strings.Repeat("a", 65), "a b", "id\x7f", "<script>"} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(KeyRequestID, bad)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get(KeyRequestID); got == bad || got == "" {
			t.Errorf("expected %q replaced by a generated id, got %q", bad, got)
		}
	}
}

func TestMaxBodyBytes(t *testing.T) {
	r := newTestEngine(MaxBodyBytes(8))
	r.POST("/x", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.Status(http.StatusOK)
	})

	// 声明长度超限
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123456789")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for declared oversize, got %d", w.Code)
	}

	// 未声明长度：读到上限时报错
	req := httptest.NewRequest(http.MethodPost, "/x", io.NopCloser(strings.NewReader("0123456789")))
	req.ContentLength = -1
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for streamed oversize, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 within limit, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	r := newTestEngine(RateLimit(0.001, 1))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("expected [200 429], got %v", codes)
	}
}

func TestTimeout(t *testing.T) {
	r := newTestEngine(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) { <-c.Request.Context().Done() })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("expected 504, got %d", w.Code)
	}
}

func TestAccessLogFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newTestEngine(RequestID(), AccessLog(zap.New(core)))
	r.GET("/users/:id", func(c *gin.Context) {
		c.Set(resp.KeyErrKind, "not_found")
		c.String(http.StatusNotFound, "couldn't find such a user with id 7")
	})
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req.Header.Set(KeyRequestID, "rid-1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	entries := logs.AllUntimed()
	if len(entries) != 3 {
		t.Fatalf("expected 3 access log entries, got %d", len(entries))
	}

	miss := entries[0]
	fields := miss.ContextMap()
	if miss.Level != zapcore.WarnLevel {
		t.Errorf("expected warn for 404, got %v", miss.Level)
	}
	if fields["route"] != "/users/:id" || fields["path"] != "/users/7" {
		t.Errorf("unexpected route/path %v %v", fields["route"], fields["path"])
	}
	if fields["err_kind"] != "not_found" || fields["rid"] != "rid-1" || fields["status"] != int64(http.StatusNotFound) {
		t.Errorf("unexpected fields %v", fields)
	}

	ok := entries[1]
	if ok.Level != zapcore.InfoLevel {
		t.Errorf("expected info for 200, got %v", ok.Level)
	}
	if _, has := ok.ContextMap()["err_kind"]; has {
		t.Errorf("successful request should carry no err_kind: %v", ok.ContextMap())
	}

	if entries[2].ContextMap()["route"] != "unmatched" {
		t.Errorf("expected unmatched route, got %v", entries[2].ContextMap()["route"])
	}
}

func TestAccessLogKeepsStatus(t *testing.T) {
	r := newTestEngine(AccessLog(zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusTeapot, "short and stout") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "short and stout" {
		t.Errorf("unexpected response %d %q", w.Code, w.Body.String())
	}
}
