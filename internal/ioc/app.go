package ioc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gotomicro/ego/server/egin"
)

// Task 后台任务，Start 阻塞直到 ctx 被取消并且手上的工作都做完
type Task interface {
	Start(ctx context.Context)
}

type App struct {
	Web   *egin.Component
	Tasks []Task

	wg sync.WaitGroup `wire:"-"`
}

func (a *App) StartTasks(ctx context.Context) {
	for _, t := range a.Tasks {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			t.Start(ctx)
		}()
	}
}

// WaitTasks 等待所有任务退出，超时返回错误
func (a *App) WaitTasks(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("等待后台任务退出超时 %s", timeout)
	}
}
