package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	sms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

var _ Client = (*TencentCloudSMS)(nil)

// TencentCloudSMS 腾讯云短信实现
type TencentCloudSMS struct {
	client *sms.Client
	appID  string
}

func NewTencentCloudSMS(regionID, secretID, secretKey, appID string) (*TencentCloudSMS, error) {
	credential := common.NewCredential(secretID, secretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = "sms.tencentcloudapi.com"
	client, err := sms.NewClient(credential, regionID, cpf)
	if err != nil {
		return nil, err
	}
	return &TencentCloudSMS{client: client, appID: appID}, nil
}

func (t *TencentCloudSMS) Send(ctx context.Context, req SendReq) (SendResp, error) {
	if len(req.PhoneNumbers) == 0 {
		return SendResp{}, fmt.Errorf("%w: %v", ErrInvalidParameter, "手机号码不能为空")
	}

	request := sms.NewSendSmsRequest()
	request.SetContext(ctx)
	request.SmsSdkAppId = common.StringPtr(t.appID)
	request.SignName = common.StringPtr(req.SignName)
	request.TemplateId = common.StringPtr(req.TemplateID)
	request.TemplateParamSet = common.StringPtrs(req.TemplateParams)
	request.SessionContext = common.StringPtr(req.OutID)
	phones := make([]string, 0, len(req.PhoneNumbers))
	for _, p := range req.PhoneNumbers {
		// 腾讯云要求 E.164 格式
		if !strings.HasPrefix(p, "+") {
			p = "+86" + p
		}
		phones = append(phones, p)
	}
	request.PhoneNumberSet = common.StringPtrs(phones)

	response, err := t.client.SendSms(request)
	if err != nil {
		return SendResp{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if response.Response == nil {
		return SendResp{}, fmt.Errorf("%w: %v", ErrSendFailed, "响应异常")
	}

	result := SendResp{
		RequestID:    deref(response.Response.RequestId),
		PhoneNumbers: make(map[string]SendRespStatus, len(response.Response.SendStatusSet)),
	}
	for _, status := range response.Response.SendStatusSet {
		if status == nil || status.PhoneNumber == nil {
			continue
		}
		code := deref(status.Code)
		// 腾讯云成功码是 Ok，统一成 OK
		if strings.EqualFold(code, OK) {
			code = OK
		}
		result.PhoneNumbers[strings.TrimPrefix(*status.PhoneNumber, "+86")] = SendRespStatus{
			Code:    code,
			Message: deref(status.Message),
		}
	}
	return result, nil
}

// 腾讯云回执里的时间是北京时间
var receiptLocation = time.FixedZone("CST", 8*3600)

const (
	receiptTimeLayout = "2006-01-02 15:04:05"
	// 单次最多拉取的回执数
	maxReceiptLimit = 100
	receiptSuccess  = "SUCCESS"
)

// PullReceipts 拉取短信下发状态，拉取过的回执不会再返回
func (t *TencentCloudSMS) PullReceipts(ctx context.Context, limit int) ([]domain.SMSReceipt, error) {
	if limit <= 0 || limit > maxReceiptLimit {
		limit = maxReceiptLimit
	}
	request := sms.NewPullSmsSendStatusRequest()
	request.SetContext(ctx)
	request.SmsSdkAppId = common.StringPtr(t.appID)
	request.Limit = common.Uint64Ptr(uint64(limit))

	response, err := t.client.PullSmsSendStatus(request)
	if err != nil {
		return nil, fmt.Errorf("拉取短信回执失败: %w", err)
	}
	if response.Response == nil {
		return nil, fmt.Errorf("拉取短信回执失败: %v", "响应异常")
	}
	res := make([]domain.SMSReceipt, 0, len(response.Response.PullSmsSendStatusSet))
	for _, status := range response.Response.PullSmsSendStatusSet {
		if status == nil {
			continue
		}
		receipt := domain.SMSReceipt{
			MsgID:       deref(status.SessionContext),
			PhoneNumber: strings.TrimPrefix(deref(status.PhoneNumber), "+86"),
			Success:     deref(status.ReportStatus) == receiptSuccess,
			Code:        deref(status.ReportStatus),
			Message:     deref(status.Description),
		}
		if at, er := time.ParseInLocation(receiptTimeLayout, deref(status.UserReceiveTime), receiptLocation); er == nil {
			receipt.ReceiveTime = at
		}
		res = append(res, receipt)
	}
	return res, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
