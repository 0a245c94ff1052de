package domain

import (
	"fmt"
	"strings"

	"gitee.com/flycash/message-dispatch/internal/errs"
)

// MessageType 消息类型
type MessageType int

const (
	MessageTypeSMSVerification MessageType = iota // 短信验证码
	MessageTypeSMSInform                          // 短信通知
	MessageTypeSMSMarketing                       // 营销短信
	MessageTypePushTemplate                       // 微信模板消息
	MessageTypeEmail                              // 邮件
)

// 发送平台，策略注册表里的命名空间
const (
	PlatformSMS          = "SMS_MESSAGE_"
	PlatformPushTemplate = "WE_CHART_TEMPLATE_MESSAGE"
	PlatformEmail        = "MAIL_MESSAGE"
)

func (t MessageType) IsValid() bool {
	return t >= MessageTypeSMSVerification && t <= MessageTypeEmail
}

func (t MessageType) IsSMS() bool {
	return t == MessageTypeSMSVerification || t == MessageTypeSMSInform || t == MessageTypeSMSMarketing
}

func (t MessageType) IsVerification() bool {
	return t == MessageTypeSMSVerification
}

// Platform 消息类型对应的发送平台
func (t MessageType) Platform() string {
	switch {
	case t.IsSMS():
		return PlatformSMS
	case t == MessageTypePushTemplate:
		return PlatformPushTemplate
	case t == MessageTypeEmail:
		return PlatformEmail
	default:
		return ""
	}
}

func (t MessageType) String() string {
	switch t {
	case MessageTypeSMSVerification:
		return "SMS_VERIFICATION"
	case MessageTypeSMSInform:
		return "SMS_INFORM"
	case MessageTypeSMSMarketing:
		return "SMS_MARKETING"
	case MessageTypePushTemplate:
		return "PUSH_TEMPLATE"
	case MessageTypeEmail:
		return "EMAIL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

// CallbackType 回调触发条件
type CallbackType string

const (
	CallbackTypeAll     CallbackType = "all"
	CallbackTypeSuccess CallbackType = "success"
	CallbackTypeFail    CallbackType = "fail"
)

// ParseCallbackType 忽略大小写
func ParseCallbackType(s string) (CallbackType, error) {
	t := CallbackType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case CallbackTypeAll, CallbackTypeSuccess, CallbackTypeFail:
		return t, nil
	default:
		return "", fmt.Errorf("%w: 回调类型 %q", errs.ErrInvalidParameter, s)
	}
}

// Accept 根据发送结果判断是否需要回调
func (t CallbackType) Accept(success bool) bool {
	switch t {
	case CallbackTypeAll:
		return true
	case CallbackTypeSuccess:
		return success
	case CallbackTypeFail:
		return !success
	default:
		return false
	}
}

type CallbackConfig struct {
	Type        string `json:"type"`
	ServiceName string `json:"serviceName"`
	BizScene    string `json:"bizScene"`
}

// Tag 回调消息的 tag
func (c CallbackConfig) Tag() string {
	return c.ServiceName + "_" + c.BizScene
}

// MessageSendRequest 消息发送请求，校验通过之后不再修改
type MessageSendRequest struct {
	MsgType        MessageType     `json:"msgType"`
	Receiver       string          `json:"receiver"`
	TemplateID     string          `json:"templateId"`
	ParamList      []string        `json:"paramList"`
	CallbackConfig *CallbackConfig `json:"callbackConfig,omitempty"`
}

// MessageSendEvent 一次发送生命周期内的工作记录
// SmsOptionalChannels 和 CurrentSendChannel 只会被处理该事件的 goroutine 修改
type MessageSendEvent struct {
	MsgID               string             `json:"msgId"`
	Request             MessageSendRequest `json:"messageSendRequest"`
	SmsOptionalChannels []string           `json:"smsOptionalChannels,omitempty"`
	CurrentSendChannel  string             `json:"currentSendChannel,omitempty"`
}

// RemoveChannel 从候选渠道里剔除已经选过的渠道
func (e *MessageSendEvent) RemoveChannel(channelID string) {
	channels := make([]string, 0, len(e.SmsOptionalChannels))
	for _, c := range e.SmsOptionalChannels {
		if c != channelID {
			channels = append(channels, c)
		}
	}
	e.SmsOptionalChannels = channels
}

// SendOutcome 一次发送的结果
type SendOutcome struct {
	Success      bool   `json:"success"`
	ProviderCode string `json:"code,omitempty"`
	ErrMsg       string `json:"errMsg,omitempty"`
}

func SuccessOutcome() SendOutcome {
	return SendOutcome{Success: true}
}

// FailedOutcome 失败码和失败信息都不会为空，供应商没给信息时用失败码代替
func FailedOutcome(code, msg string) SendOutcome {
	if code == "" {
		code = OutcomeCodeClientError
	}
	if msg == "" {
		msg = code
	}
	return SendOutcome{ProviderCode: code, ErrMsg: msg}
}

// 内部产生的失败码
const (
	OutcomeCodeStrategyNotFound    = "STRATEGY_NOT_FOUND"
	OutcomeCodeSelectionExhausted  = "SELECTION_EXHAUSTED"
	OutcomeCodeTemplateUnavailable = "TEMPLATE_UNAVAILABLE"
	OutcomeCodeBreakerOpen         = "BREAKER_OPEN"
	OutcomeCodeClientError         = "-1"
)

// SaveEvent 发送记录入库事件
type SaveEvent struct {
	MsgID              string             `json:"msgId"`
	Request            MessageSendRequest `json:"messageSendRequest"`
	Outcome            *SendOutcome       `json:"messagePlatformSendResponse,omitempty"`
	CurrentSendChannel string             `json:"currentSendChannel"`
}

const DefaultCallbackErrMsg = "Send message process execution failed"

// CallbackEvent 回调调用方的事件
type CallbackEvent struct {
	MsgID   string             `json:"msgId"`
	Success bool               `json:"success"`
	ErrMsg  string             `json:"errorMsg,omitempty"`
	Request MessageSendRequest `json:"messageSendRequest"`
}

// MessageWrapper 投递到消息队列的统一结构
type MessageWrapper[T any] struct {
	UUID      string `json:"uuid"`
	TraceID   string `json:"traceId,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Keys      string `json:"keys"`
	Data      T      `json:"message"`
}
