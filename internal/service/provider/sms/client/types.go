package client

import (
	"context"
	"errors"
)

var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrSendFailed       = errors.New("短信发送失败")
)

// OK 供应商返回的成功码
const OK = "OK"

// Client 短信供应商客户端
//
//go:generate mockgen -source=./types.go -destination=./mocks/client.mock.go -package=clientmocks Client
type Client interface {
	Send(ctx context.Context, req SendReq) (SendResp, error)
}

type SendReq struct {
	PhoneNumbers []string
	SignName     string
	TemplateID   string
	// 按顺序排列的参数，腾讯云使用
	TemplateParams []string
	// 带名字的参数，阿里云使用
	NamedParams map[string]string
	// 外部流水号，一般是消息 ID
	OutID string
}

type SendResp struct {
	RequestID    string
	PhoneNumbers map[string]SendRespStatus
}

type SendRespStatus struct {
	Code    string
	Message string
}
