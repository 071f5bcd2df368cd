package router

import (
	"sort"

	"user-posts-api/internal/transport/http/ez"
)

// APIModule 一组接口（users / posts …）
type APIModule interface{ MountAPI(ez.EZ) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// MountAll 按优先级挂载模块；模块由调用方注入，不走全局注册表
func MountAll(e ez.EZ, mods ...APIModule) {
	mods = append([]APIModule(nil), mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(e)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
