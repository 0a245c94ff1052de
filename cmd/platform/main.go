package main

import (
	"context"
	"time"

	"gitee.com/flycash/message-dispatch/cmd/platform/ioc"
	prodioc "gitee.com/flycash/message-dispatch/internal/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/server"
	"github.com/gotomicro/ego/server/egovernor"
	"go.opentelemetry.io/otel/sdk/trace"
)

func main() {
	const taskStopTimeout = 10 * time.Second
	var (
		tp     *trace.TracerProvider
		app    *prodioc.App
		cancel context.CancelFunc = func() {}
	)
	// 先停止消费并等待正在处理的消息，再关闭 tracer
	egoApp := ego.New(
		ego.WithBeforeStopClean(func() error {
			cancel()
			if app == nil {
				return nil
			}
			return app.WaitTasks(taskStopTimeout)
		}),
		ego.WithAfterStopClean(func() error {
			if tp == nil {
				return nil
			}
			ctx, c := context.WithTimeout(context.Background(), 5*time.Second)
			defer c()
			return tp.Shutdown(ctx)
		}),
	)
	tp = prodioc.InitZipkinTracer()
	app = ioc.InitApp()

	var ctx context.Context
	ctx, cancel = context.WithCancel(context.Background())
	app.StartTasks(ctx)

	if err := egoApp.Serve(
		egovernor.Load("server.governor").Build(),
		func() server.Server {
			return app.Web
		}(),
	).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
