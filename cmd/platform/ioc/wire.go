//go:build wireinject

package ioc

import (
	"gitee.com/flycash/message-dispatch/internal/ioc"
	"gitee.com/flycash/message-dispatch/internal/repository"
	"gitee.com/flycash/message-dispatch/internal/repository/dao"
	"gitee.com/flycash/message-dispatch/internal/service/message"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	"gitee.com/flycash/message-dispatch/internal/service/record"
	"gitee.com/flycash/message-dispatch/internal/web"
	"github.com/google/wire"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitShardingDBs,
		ioc.InitRedisClient,
		ioc.InitRedisCmd,
		ioc.InitEtcdClient,
		ioc.InitMQ,
		ioc.InitGoCache,
		ioc.InitIDGenerator,
		ioc.InitMsgIDGenerator,
		ioc.InitDistributedLock,
		ioc.InitGuard,
		ioc.InitInstanceID,
	)
	templateSet = wire.NewSet(
		dao.NewTemplateConfigDAO,
		ioc.InitTemplateRepository,
	)
	recordSet = wire.NewSet(
		ioc.InitSendRecordDAO,
		repository.NewSendRecordRepository,
		record.NewService,
		record.NewShardTableTask,
		ioc.InitReceiptTask,
	)
	dispatchSet = wire.NewSet(
		ioc.InitSMSClients,
		ioc.InitProviderRegistry,
		ioc.InitWeightRules,
		ioc.InitRulesTask,
		ioc.InitSelector,
		ioc.InitDispatcher,
		wire.Bind(new(message.Dispatcher), new(*provider.Dispatcher)),
	)
	messageSet = wire.NewSet(
		ioc.InitSendRunner,
		ioc.InitSendEventProducer,
		ioc.InitSaveEventProducer,
		ioc.InitCallbackEventProducer,
		message.NewSendHandler,
		message.NewService,
	)
	webSet = wire.NewSet(
		ioc.InitJwtAuth,
		web.NewHandler,
		ioc.InitWebServer,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		BaseSet,
		templateSet,
		recordSet,
		dispatchSet,
		messageSet,
		webSet,
		ioc.InitConsumerConfig,
		ioc.InitTasks,
		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
