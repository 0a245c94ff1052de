package chain

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/pkg/ratelimit"
	"github.com/gotomicro/ego/core/elog"
)

// 大陆手机号
var mobileRegexp = regexp.MustCompile(`^1[3-9]\d{9}$`)

// BasicHandler 必填字段
type BasicHandler struct{}

func (BasicHandler) Validate(_ context.Context, req domain.MessageSendRequest) error {
	if !req.MsgType.IsValid() {
		return fmt.Errorf("%w: 消息类型 %d", errs.ErrInvalidParameter, req.MsgType)
	}
	if strings.TrimSpace(req.Receiver) == "" {
		return fmt.Errorf("%w: 接收者为空", errs.ErrInvalidParameter)
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return fmt.Errorf("%w: 模板ID为空", errs.ErrInvalidParameter)
	}
	if req.CallbackConfig != nil {
		if _, err := domain.ParseCallbackType(req.CallbackConfig.Type); err != nil {
			return err
		}
		if req.CallbackConfig.ServiceName == "" {
			return fmt.Errorf("%w: 回调服务名为空", errs.ErrInvalidParameter)
		}
	}
	return nil
}

// MobileHandler 短信类消息的接收者必须是合法手机号
type MobileHandler struct{}

func (MobileHandler) Validate(_ context.Context, req domain.MessageSendRequest) error {
	if !req.MsgType.IsSMS() {
		return nil
	}
	if !IsMobile(req.Receiver) {
		return fmt.Errorf("%w: 手机号 %q 格式错误", errs.ErrInvalidParameter, req.Receiver)
	}
	return nil
}

func IsMobile(s string) bool {
	return mobileRegexp.MatchString(strings.TrimPrefix(s, "+86"))
}

// VerificationLimitHandler 同一个手机号验证码短信限流
type VerificationLimitHandler struct {
	limiter ratelimit.Limiter
	logger  *elog.Component
}

func NewVerificationLimitHandler(limiter ratelimit.Limiter) *VerificationLimitHandler {
	return &VerificationLimitHandler{
		limiter: limiter,
		logger:  elog.DefaultLogger,
	}
}

func (h *VerificationLimitHandler) Validate(ctx context.Context, req domain.MessageSendRequest) error {
	if !req.MsgType.IsVerification() {
		return nil
	}
	limited, err := h.limiter.Limit(ctx, strings.TrimPrefix(req.Receiver, "+86"))
	if err != nil {
		// 限流器不可用时放行
		h.logger.Warn("验证码限流判断失败", elog.FieldErr(err))
		return nil
	}
	if limited {
		return fmt.Errorf("%w: 手机号 %s 验证码发送过于频繁", errs.ErrRateLimited, req.Receiver)
	}
	return nil
}

// NewMessageSendRunner 注册消息发送的默认校验链
func NewMessageSendRunner(limiter ratelimit.Limiter) *Runner {
	return NewBuilder().
		Register(PipelineMessageSend, BasicHandler{}, 0).
		Register(PipelineMessageSend, MobileHandler{}, 1).
		Register(PipelineMessageSend, NewVerificationLimitHandler(limiter), 2).
		Build()
}
