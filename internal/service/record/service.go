package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// Service 发送记录
type Service interface {
	// Save 重复保存同一个 msgId 视为成功
	Save(ctx context.Context, evt domain.SaveEvent) error
	FindByMsgID(ctx context.Context, msgID string) (domain.SendRecord, error)
	ListByReceiver(ctx context.Context, receiver string, start, end time.Time) ([]domain.SendRecord, error)
}

type service struct {
	repo   repository.SendRecordRepository
	now    func() time.Time
	logger *elog.Component
}

func NewService(repo repository.SendRecordRepository) Service {
	return &service{
		repo:   repo,
		now:    time.Now,
		logger: elog.DefaultLogger,
	}
}

func (s *service) Save(ctx context.Context, evt domain.SaveEvent) error {
	record, err := s.toRecord(evt)
	if err != nil {
		return err
	}
	err = s.repo.Save(ctx, record)
	if errors.Is(err, errs.ErrSendRecordDuplicate) {
		s.logger.Warn("发送记录已经存在", elog.String("msgId", evt.MsgID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrPersistenceFailure, err)
	}
	return nil
}

func (s *service) FindByMsgID(ctx context.Context, msgID string) (domain.SendRecord, error) {
	return s.repo.FindByMsgID(ctx, msgID)
}

func (s *service) ListByReceiver(ctx context.Context, receiver string, start, end time.Time) ([]domain.SendRecord, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: 结束时间早于开始时间", errs.ErrInvalidParameter)
	}
	return s.repo.ListByTimeRange(ctx, receiver, start, end)
}

func (s *service) toRecord(evt domain.SaveEvent) (domain.SendRecord, error) {
	record := domain.SendRecord{
		MsgID:      evt.MsgID,
		MsgType:    evt.Request.MsgType,
		Receiver:   evt.Request.Receiver,
		TemplateID: evt.Request.TemplateID,
		Sender:     evt.CurrentSendChannel,
		SendTime:   s.now(),
		Params:     evt.Request.ParamList,
	}
	isSMS := evt.Request.MsgType.IsSMS()
	if evt.Outcome != nil && evt.Outcome.Success {
		// 短信只代表网关受理，最终结果要等回执
		record.Status = domain.SendStatusSuccess
		if isSMS {
			record.Status = domain.SendStatusProgress
		}
		return record, nil
	}

	record.Status = domain.SendStatusFail
	if isSMS {
		record.Status = domain.SendStatusSubmitFail
	}
	outcome := domain.FailedOutcome(domain.OutcomeCodeClientError, domain.DefaultCallbackErrMsg)
	if evt.Outcome != nil {
		outcome = *evt.Outcome
	}
	failInfo, err := json.Marshal(outcome)
	if err != nil {
		return domain.SendRecord{}, err
	}
	record.FailInfo = string(failInfo)
	return record, nil
}
