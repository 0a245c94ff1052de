package registry

import (
	"fmt"
	"slices"

	"gitee.com/flycash/message-dispatch/internal/errs"
	"github.com/ecodeclub/ekit/mapx"
)

// Registry key 到实现的映射
// 启动阶段调用 Register 注册，之后只读，所以读取时不加锁
type Registry[V any] struct {
	name  string
	impls map[string]V
}

func New[V any](name string) *Registry[V] {
	return &Registry[V]{
		name:  name,
		impls: make(map[string]V, 8),
	}
}

// Register 同一个 key 不允许重复注册
func (r *Registry[V]) Register(key string, impl V) error {
	if key == "" {
		return fmt.Errorf("%w: %s 注册的 key 为空", errs.ErrInvalidParameter, r.name)
	}
	if _, ok := r.impls[key]; ok {
		return fmt.Errorf("%s 重复注册 key %s", r.name, key)
	}
	r.impls[key] = impl
	return nil
}

// MustRegister 用于启动阶段的静态注册
func (r *Registry[V]) MustRegister(key string, impl V) *Registry[V] {
	if err := r.Register(key, impl); err != nil {
		panic(err)
	}
	return r
}

func (r *Registry[V]) Resolve(key string) (V, error) {
	impl, ok := r.impls[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s key=%s", errs.ErrStrategyNotFound, r.name, key)
	}
	return impl, nil
}

// Keys 排好序，方便打日志
func (r *Registry[V]) Keys() []string {
	keys := mapx.Keys(r.impls)
	slices.Sort(keys)
	return keys
}
