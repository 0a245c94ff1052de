package domain

import (
	"time"
)

// SendStatus 发送记录状态
type SendStatus int

const (
	SendStatusProgress   SendStatus = 0 // 短信网关已受理，等待回执
	SendStatusSuccess    SendStatus = 1 // 发送成功
	SendStatusSubmitFail SendStatus = 2 // 短信提交网关失败
	SendStatusFail       SendStatus = 3 // 发送失败
)

func (s SendStatus) String() string {
	switch s {
	case SendStatusProgress:
		return "SEND_PROGRESS"
	case SendStatusSuccess:
		return "SEND_SUCCESS"
	case SendStatusSubmitFail:
		return "SUBMIT_FAIL"
	case SendStatusFail:
		return "SEND_FAIL"
	default:
		return "UNKNOWN"
	}
}

// SendRecord 一次发送的落库记录
type SendRecord struct {
	MsgID      string
	MsgType    MessageType
	Receiver   string
	TemplateID string
	// 实际使用的发送渠道
	Sender   string
	Status   SendStatus
	FailInfo string
	SendTime time.Time
	// 模板参数，存在扩展表里
	Params []string
}

// SMSReceipt 短信供应商的回执，MsgID 来自发送时透传的外部流水号
type SMSReceipt struct {
	MsgID       string
	PhoneNumber string
	Success     bool
	Code        string
	Message     string
	ReceiveTime time.Time
}

// ReceiptStatus 回执对应的最终状态
func (r SMSReceipt) ReceiptStatus() SendStatus {
	if r.Success {
		return SendStatusSuccess
	}
	return SendStatusFail
}
