package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/pkg/loopjob"
	"gitee.com/flycash/message-dispatch/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"github.com/meoying/dlock-go"
)

const receiptTaskKey = "message_sms_receipt_pull"

// ReceiptPuller 支持主动拉取回执的短信供应商
//
//go:generate mockgen -source=./receipt_task.go -destination=./mocks/receipt.mock.go -package=recordmocks ReceiptPuller
type ReceiptPuller interface {
	PullReceipts(ctx context.Context, limit int) ([]domain.SMSReceipt, error)
}

// ReceiptTask 拉取短信回执，把网关已受理的记录更新成最终状态
type ReceiptTask struct {
	dclient dlock.Client
	repo    repository.SendRecordRepository
	// key 是供应商，例如 TX
	pullers   map[string]ReceiptPuller
	batchSize int
	interval  time.Duration
	logger    *elog.Component
}

func NewReceiptTask(dclient dlock.Client, repo repository.SendRecordRepository, pullers map[string]ReceiptPuller) *ReceiptTask {
	return &ReceiptTask{
		dclient:   dclient,
		repo:      repo,
		pullers:   pullers,
		batchSize: 100,
		interval:  10 * time.Second,
		logger:    elog.DefaultLogger.With(elog.String("task", receiptTaskKey)),
	}
}

func (t *ReceiptTask) Start(ctx context.Context) {
	if len(t.pullers) == 0 {
		t.logger.Info("没有支持拉取回执的短信供应商")
		<-ctx.Done()
		return
	}
	lj := loopjob.NewInfiniteLoop(t.dclient, t.PullReceipts, receiptTaskKey)
	lj.Run(ctx)
}

// PullReceipts 每个供应商拉取一批回执，拉满一批时不等待直接进入下一轮
func (t *ReceiptTask) PullReceipts(ctx context.Context) error {
	var (
		err  error
		full bool
	)
	for name, puller := range t.pullers {
		receipts, er := puller.PullReceipts(ctx, t.batchSize)
		if er != nil {
			err = multierror.Append(err, fmt.Errorf("拉取 %s 回执失败 %w", name, er))
			continue
		}
		if len(receipts) >= t.batchSize {
			full = true
		}
		for _, r := range receipts {
			t.apply(ctx, name, r)
		}
	}
	if !full {
		loopjob.Sleep(ctx, t.interval)
	}
	return err
}

func (t *ReceiptTask) apply(ctx context.Context, provider string, r domain.SMSReceipt) {
	if r.MsgID == "" {
		t.logger.Warn("回执没有消息 ID", elog.String("provider", provider), elog.String("phone", r.PhoneNumber))
		return
	}
	to := r.ReceiptStatus()
	var failInfo string
	if to == domain.SendStatusFail {
		info, err := json.Marshal(domain.FailedOutcome(r.Code, r.Message))
		if err != nil {
			t.logger.Error("序列化回执失败", elog.String("msgId", r.MsgID), elog.FieldErr(err))
			return
		}
		failInfo = string(info)
	}
	err := t.repo.UpdateStatus(ctx, r.MsgID, domain.SendStatusProgress, to, failInfo)
	switch {
	case errors.Is(err, errs.ErrSendRecordNotFound):
		// 记录还没入库或者已经是最终状态
		t.logger.Warn("回执没有对应的待确认记录",
			elog.String("provider", provider),
			elog.String("msgId", r.MsgID))
	case err != nil:
		t.logger.Error("更新回执状态失败",
			elog.String("provider", provider),
			elog.String("msgId", r.MsgID),
			elog.FieldErr(err))
	}
}
