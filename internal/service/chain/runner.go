package chain

import (
	"context"
	"sort"

	"gitee.com/flycash/message-dispatch/internal/domain"
)

type entry struct {
	handler Handler
	order   int
}

// Builder 启动阶段注册校验器
type Builder struct {
	pipelines map[string][]entry
}

func NewBuilder() *Builder {
	return &Builder{pipelines: make(map[string][]entry, 4)}
}

// Register order 越小越先执行，order 相同按注册顺序执行
func (b *Builder) Register(pipeline string, handler Handler, order int) *Builder {
	b.pipelines[pipeline] = append(b.pipelines[pipeline], entry{handler: handler, order: order})
	return b
}

// Build 构造之后的 Runner 不可变，并发读取不需要加锁
func (b *Builder) Build() *Runner {
	pipelines := make(map[string][]Handler, len(b.pipelines))
	for name, entries := range b.pipelines {
		sorted := make([]entry, len(entries))
		copy(sorted, entries)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].order < sorted[j].order
		})
		handlers := make([]Handler, 0, len(sorted))
		for _, e := range sorted {
			handlers = append(handlers, e.handler)
		}
		pipelines[name] = handlers
	}
	return &Runner{pipelines: pipelines}
}

type Runner struct {
	pipelines map[string][]Handler
}

// Run 按顺序执行，遇到第一个错误就返回
// 没有注册过的 pipeline 直接通过
func (r *Runner) Run(ctx context.Context, pipeline string, req domain.MessageSendRequest) error {
	for _, h := range r.pipelines[pipeline] {
		if err := h.Validate(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
