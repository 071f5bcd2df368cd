// Package blocking 把会阻塞的调用（数据库 I/O）从请求 goroutine 挪到有界的工作池执行，
// 请求 goroutine 只等待结果。
package blocking

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"
)

// ErrSaturated 在拿到 worker 之前 ctx 已取消/超时
var ErrSaturated = errors.New("blocking pool saturated")

var (
	tasksInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "blocking_tasks_inflight", Help: "Blocking tasks currently running on the worker pool",
	})
	tasksWaitSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "blocking_task_wait_seconds",
		Help:    "Time spent waiting for a free worker",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	})
)

func init() { prometheus.MustRegister(tasksInflight, tasksWaitSeconds) }

// Pool 并发上限为 size 的阻塞任务执行器；零值不可用，用 New 创建
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

func (p *Pool) Size() int { return int(p.size) }

// PanicError 任务 panic 后转成的错误
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("blocking task panicked: %v", e.Value) }

// Do 在工作池的 goroutine 上执行 fn 并等待结果。
// 等 worker 时遵守 ctx；任务一旦开始就跑完（fn 自己用 ctx 控制 I/O），不会在中途丢弃结果。
func Do[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrSaturated, err)
	}
	tasksWaitSeconds.Observe(time.Since(start).Seconds())

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	tasksInflight.Inc()
	go func() {
		defer func() {
			tasksInflight.Dec()
			p.sem.Release(1)
		}()
		defer func() {
			if rec := recover(); rec != nil {
				done <- result{err: &PanicError{Value: rec, Stack: debug.Stack()}}
			}
		}()
		v, err := fn(ctx)
		done <- result{v: v, err: err}
	}()
	r := <-done
	return r.v, r.err
}
