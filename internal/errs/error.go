package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	// ErrInvalidParameter 请求参数校验失败，对应调用方的 4xx 错误
	ErrInvalidParameter = errors.New("参数错误")
	ErrRateLimited      = errors.New("触发限流")

	ErrStrategyNotFound   = errors.New("未找到对应的发送策略")
	ErrSelectionExhausted = errors.New("无可用的发送渠道")
	// ErrSelectionInternal 权重计算没有命中任何区间，属于内部错误
	ErrSelectionInternal = errors.New("渠道权重计算异常")
	ErrProviderFailure   = errors.New("供应商发送失败")

	ErrPersistenceFailure  = errors.New("发送记录持久化失败")
	ErrSendRecordDuplicate = errors.New("发送记录主键冲突")
	ErrSendRecordNotFound  = errors.New("发送记录不存在")
	ErrDuplicateDelivery   = errors.New("重复消费的消息")

	ErrTemplateNotFound = errors.New("消息模板不存在")
	ErrTemplateDisabled = errors.New("消息模板未启用")
)
