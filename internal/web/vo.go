package web

import (
	"gitee.com/flycash/message-dispatch/internal/domain"
)

type CallbackConfig struct {
	Type        string `json:"type"`
	ServiceName string `json:"serviceName"`
	BizScene    string `json:"bizScene"`
}

type SendReq struct {
	MsgType        int             `json:"msgType"`
	Receiver       string          `json:"receiver"`
	TemplateID     string          `json:"templateId"`
	ParamList      []string        `json:"paramList"`
	CallbackConfig *CallbackConfig `json:"callbackConfig"`
}

func (r SendReq) toDomain() domain.MessageSendRequest {
	req := domain.MessageSendRequest{
		MsgType:    domain.MessageType(r.MsgType),
		Receiver:   r.Receiver,
		TemplateID: r.TemplateID,
		ParamList:  r.ParamList,
	}
	if r.CallbackConfig != nil {
		req.CallbackConfig = &domain.CallbackConfig{
			Type:        r.CallbackConfig.Type,
			ServiceName: r.CallbackConfig.ServiceName,
			BizScene:    r.CallbackConfig.BizScene,
		}
	}
	return req
}

type SendResp struct {
	MsgID string `json:"msgId"`
}

type Outcome struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	ErrMsg  string `json:"errMsg,omitempty"`
}

type SyncSendResp struct {
	MsgID string `json:"msgId"`
	// 内部错误时为空
	Outcome *Outcome `json:"outcome,omitempty"`
}

type RecordVO struct {
	MsgID      string   `json:"msgId"`
	MsgType    int      `json:"msgType"`
	Receiver   string   `json:"receiver"`
	TemplateID string   `json:"templateId"`
	Sender     string   `json:"sender"`
	Status     string   `json:"status"`
	FailInfo   string   `json:"failInfo,omitempty"`
	SendTime   int64    `json:"sendTime"`
	Params     []string `json:"params,omitempty"`
}

func newRecordVO(r domain.SendRecord) RecordVO {
	return RecordVO{
		MsgID:      r.MsgID,
		MsgType:    int(r.MsgType),
		Receiver:   r.Receiver,
		TemplateID: r.TemplateID,
		Sender:     r.Sender,
		Status:     r.Status.String(),
		FailInfo:   r.FailInfo,
		SendTime:   r.SendTime.UnixMilli(),
		Params:     r.Params,
	}
}
