package web

import (
	"fmt"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	msgsvc "gitee.com/flycash/message-dispatch/internal/service/message"
	recordsvc "gitee.com/flycash/message-dispatch/internal/service/record"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// 查询发送记录时最多跨越的时间范围
const maxQueryRange = 92 * 24 * time.Hour

type Handler struct {
	svc     msgsvc.Service
	records recordsvc.Service
	auth    *JwtAuth
	logger  *elog.Component
}

func NewHandler(svc msgsvc.Service, records recordsvc.Service, auth *JwtAuth) *Handler {
	return &Handler{
		svc:     svc,
		records: records,
		auth:    auth,
		logger:  elog.DefaultLogger,
	}
}

func (h *Handler) PrivateRoutes(server gin.IRouter) {
	g := server.Group("/message", AuthMiddleware(h.auth))
	g.POST("/send", h.Send)
	g.POST("/sync-send", h.SyncSend)
	g.GET("/record/:msgId", h.Record)
	g.GET("/records", h.Records)
}

func (h *Handler) Send(ctx *gin.Context) {
	req, valid := h.bind(ctx)
	if !valid {
		return
	}
	msgID, err := h.svc.Send(ctx.Request.Context(), req.toDomain())
	if err != nil {
		h.logError(ctx, "异步发送失败", err)
		fail(ctx, err)
		return
	}
	ok(ctx, SendResp{MsgID: msgID})
}

func (h *Handler) SyncSend(ctx *gin.Context) {
	req, valid := h.bind(ctx)
	if !valid {
		return
	}
	msgID, outcome, err := h.svc.SyncSend(ctx.Request.Context(), req.toDomain())
	if err != nil {
		h.logError(ctx, "同步发送失败", err)
		fail(ctx, err)
		return
	}
	resp := SyncSendResp{MsgID: msgID}
	if outcome != nil {
		resp.Outcome = &Outcome{Success: outcome.Success, Code: outcome.ProviderCode, ErrMsg: outcome.ErrMsg}
	}
	ok(ctx, resp)
}

func (h *Handler) Record(ctx *gin.Context) {
	r, err := h.records.FindByMsgID(ctx.Request.Context(), ctx.Param("msgId"))
	if err != nil {
		h.logError(ctx, "查询发送记录失败", err)
		fail(ctx, err)
		return
	}
	ok(ctx, newRecordVO(r))
}

type recordsQuery struct {
	Receiver string `form:"receiver"`
	// 毫秒时间戳
	Start int64 `form:"start"`
	End   int64 `form:"end"`
}

func (h *Handler) Records(ctx *gin.Context) {
	var q recordsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		fail(ctx, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err))
		return
	}
	start, end := time.UnixMilli(q.Start), time.UnixMilli(q.End)
	if q.Receiver == "" || !end.After(start) || end.Sub(start) > maxQueryRange {
		fail(ctx, fmt.Errorf("%w: 查询条件错误", errs.ErrInvalidParameter))
		return
	}
	records, err := h.records.ListByReceiver(ctx.Request.Context(), q.Receiver, start, end)
	if err != nil {
		h.logError(ctx, "查询发送记录失败", err)
		fail(ctx, err)
		return
	}
	ok(ctx, slice.Map(records, func(_ int, r domain.SendRecord) RecordVO {
		return newRecordVO(r)
	}))
}

// bind 回调配置只能回调到调用方自己
func (h *Handler) bind(ctx *gin.Context) (SendReq, bool) {
	var req SendReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err))
		return req, false
	}
	if req.CallbackConfig != nil && req.CallbackConfig.ServiceName != serviceName(ctx) {
		fail(ctx, fmt.Errorf("%w: 回调服务名与调用方不一致", errs.ErrInvalidParameter))
		return req, false
	}
	return req, true
}

func (h *Handler) logError(ctx *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		elog.String("serviceName", serviceName(ctx)),
		elog.String("path", ctx.FullPath()),
		elog.FieldErr(err))
}
