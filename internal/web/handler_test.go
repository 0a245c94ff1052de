//go:build unit

package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	messagemocks "gitee.com/flycash/message-dispatch/internal/service/message/mocks"
	recordmocks "gitee.com/flycash/message-dispatch/internal/service/record/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testKey = "test-key"

func newServer(t *testing.T, svc *messagemocks.MockService, records *recordmocks.MockService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := gin.New()
	NewHandler(svc, records, NewJwtAuth(testKey)).PrivateRoutes(server)
	return server
}

func token(t *testing.T, serviceName string) string {
	t.Helper()
	tk, err := NewJwtAuth(testKey).Encode(serviceName, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tk
}

func TestHandler_Send(t *testing.T) {
	t.Parallel()

	req := SendReq{
		MsgType:    int(domain.MessageTypeSMSVerification),
		Receiver:   "13800138000",
		TemplateID: "T1",
		ParamList:  []string{"1234"},
	}
	withCallback := req
	withCallback.CallbackConfig = &CallbackConfig{Type: "ALL", ServiceName: "order", BizScene: "pay"}

	testCases := []struct {
		name     string
		auth     string
		body     any
		mock     func(svc *messagemocks.MockService)
		wantCode int
		wantRes  Result
	}{
		{
			name: "发送成功",
			auth: token(t, "order"),
			body: withCallback,
			mock: func(svc *messagemocks.MockService) {
				svc.EXPECT().Send(gomock.Any(), withCallback.toDomain()).Return("123", nil)
			},
			wantCode: http.StatusOK,
			wantRes:  Result{Code: CodeOK, Msg: "OK", Data: map[string]any{"msgId": "123"}},
		},
		{
			name:     "没有 token",
			body:     req,
			mock:     func(_ *messagemocks.MockService) {},
			wantCode: http.StatusUnauthorized,
			wantRes:  Result{Code: CodeUnauthorized, Msg: "缺少 Authorization"},
		},
		{
			name:     "token 签名错误",
			auth:     "Bearer abc.def.ghi",
			body:     req,
			mock:     func(_ *messagemocks.MockService) {},
			wantCode: http.StatusUnauthorized,
			wantRes:  Result{Code: CodeUnauthorized, Msg: "token 无效"},
		},
		{
			name:     "回调到别的服务",
			auth:     token(t, "user"),
			body:     withCallback,
			mock:     func(_ *messagemocks.MockService) {},
			wantCode: http.StatusBadRequest,
			wantRes:  Result{Code: CodeInvalidInput, Msg: "参数错误: 回调服务名与调用方不一致"},
		},
		{
			name: "参数错误",
			auth: token(t, "order"),
			body: req,
			mock: func(svc *messagemocks.MockService) {
				svc.EXPECT().Send(gomock.Any(), gomock.Any()).
					Return("", fmt.Errorf("%w: 接收者为空", errs.ErrInvalidParameter))
			},
			wantCode: http.StatusBadRequest,
			wantRes:  Result{Code: CodeInvalidInput, Msg: "参数错误: 接收者为空"},
		},
		{
			name: "限流",
			auth: token(t, "order"),
			body: req,
			mock: func(svc *messagemocks.MockService) {
				svc.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errs.ErrRateLimited)
			},
			wantCode: http.StatusTooManyRequests,
			wantRes:  Result{Code: CodeRateLimited, Msg: errs.ErrRateLimited.Error()},
		},
		{
			name: "内部错误",
			auth: token(t, "order"),
			body: req,
			mock: func(svc *messagemocks.MockService) {
				svc.EXPECT().Send(gomock.Any(), gomock.Any()).Return("", errs.ErrSelectionInternal)
			},
			wantCode: http.StatusInternalServerError,
			wantRes:  Result{Code: CodeInternal, Msg: "系统错误"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := messagemocks.NewMockService(ctrl)
			tc.mock(svc)
			server := newServer(t, svc, recordmocks.NewMockService(ctrl))

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)
			httpReq := httptest.NewRequest(http.MethodPost, "/message/send", bytes.NewReader(body))
			httpReq.Header.Set("Content-Type", "application/json")
			if tc.auth != "" {
				httpReq.Header.Set("Authorization", tc.auth)
			}
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httpReq)

			assert.Equal(t, tc.wantCode, recorder.Code)
			var res Result
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			assert.Equal(t, tc.wantRes, res)
		})
	}
}

func TestHandler_SyncSend(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := messagemocks.NewMockService(ctrl)
	outcome := domain.FailedOutcome("isv.LIMIT", "限流")
	svc.EXPECT().SyncSend(gomock.Any(), gomock.Any()).Return("9", &outcome, nil)
	server := newServer(t, svc, recordmocks.NewMockService(ctrl))

	body := []byte(`{"msgType":1,"receiver":"13800138000","templateId":"T1"}`)
	httpReq := httptest.NewRequest(http.MethodPost, "/message/sync-send", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", token(t, "order"))
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httpReq)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"code":0,"msg":"OK","data":{"msgId":"9","outcome":{"success":false,"code":"isv.LIMIT","errMsg":"限流"}}}`,
		recorder.Body.String())
}

func TestHandler_Record(t *testing.T) {
	t.Parallel()

	sendTime := time.UnixMilli(1716192000000)
	testCases := []struct {
		name     string
		mock     func(records *recordmocks.MockService)
		wantCode int
		wantBody string
	}{
		{
			name: "查询成功",
			mock: func(records *recordmocks.MockService) {
				records.EXPECT().FindByMsgID(gomock.Any(), "42").Return(domain.SendRecord{
					MsgID:    "42",
					MsgType:  domain.MessageTypeSMSInform,
					Receiver: "13800138000",
					Sender:   "ALI_01",
					Status:   domain.SendStatusProgress,
					SendTime: sendTime,
				}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"code":0,"msg":"OK","data":{"msgId":"42","msgType":1,"receiver":"13800138000","templateId":"",
"sender":"ALI_01","status":"SEND_PROGRESS","sendTime":1716192000000}}`,
		},
		{
			name: "记录不存在",
			mock: func(records *recordmocks.MockService) {
				records.EXPECT().FindByMsgID(gomock.Any(), "42").Return(domain.SendRecord{}, errs.ErrSendRecordNotFound)
			},
			wantCode: http.StatusNotFound,
			wantBody: fmt.Sprintf(`{"code":3,"msg":%q}`, errs.ErrSendRecordNotFound.Error()),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			records := recordmocks.NewMockService(ctrl)
			tc.mock(records)
			server := newServer(t, messagemocks.NewMockService(ctrl), records)

			httpReq := httptest.NewRequest(http.MethodGet, "/message/record/42", nil)
			httpReq.Header.Set("Authorization", token(t, "order"))
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httpReq)

			assert.Equal(t, tc.wantCode, recorder.Code)
			assert.JSONEq(t, tc.wantBody, recorder.Body.String())
		})
	}
}

func TestHandler_RecordsInvalidRange(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	server := newServer(t, messagemocks.NewMockService(ctrl), recordmocks.NewMockService(ctrl))

	httpReq := httptest.NewRequest(http.MethodGet, "/message/records?receiver=13800138000&start=2000&end=1000", nil)
	httpReq.Header.Set("Authorization", token(t, "order"))
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httpReq)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
