package repository

import (
	"context"
	"encoding/json"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// SendRecordRepository 发送记录
//
//go:generate mockgen -source=./send_record.go -destination=./mocks/send_record.mock.go -package=repomocks SendRecordRepository
type SendRecordRepository interface {
	// Save 主记录和参数要么都写入要么都不写入
	Save(ctx context.Context, record domain.SendRecord) error
	FindByMsgID(ctx context.Context, msgID string) (domain.SendRecord, error)
	ListByTimeRange(ctx context.Context, receiver string, start, end time.Time) ([]domain.SendRecord, error)
	// UpdateStatus 状态不是 from 时不更新，返回 errs.ErrSendRecordNotFound
	UpdateStatus(ctx context.Context, msgID string, from, to domain.SendStatus, failInfo string) error
	CreateShards(ctx context.Context, now time.Time) error
}

type sendRecordRepository struct {
	dao dao.SendRecordDAO
}

func NewSendRecordRepository(d dao.SendRecordDAO) SendRecordRepository {
	return &sendRecordRepository{dao: d}
}

func (r *sendRecordRepository) Save(ctx context.Context, record domain.SendRecord) error {
	params, err := json.Marshal(record.Params)
	if err != nil {
		return err
	}
	return r.dao.Insert(ctx, r.toEntity(record), dao.SendRecordExtend{
		MsgID:    record.MsgID,
		MsgParam: params,
	})
}

func (r *sendRecordRepository) FindByMsgID(ctx context.Context, msgID string) (domain.SendRecord, error) {
	record, extend, err := r.dao.FindByMsgID(ctx, msgID)
	if err != nil {
		return domain.SendRecord{}, err
	}
	res := r.toDomain(record)
	if len(extend.MsgParam) > 0 {
		if err = json.Unmarshal(extend.MsgParam, &res.Params); err != nil {
			return domain.SendRecord{}, err
		}
	}
	return res, nil
}

// ListByTimeRange 不返回模板参数
func (r *sendRecordRepository) ListByTimeRange(ctx context.Context, receiver string, start, end time.Time) ([]domain.SendRecord, error) {
	records, err := r.dao.ListByTimeRange(ctx, receiver, start, end)
	if err != nil {
		return nil, err
	}
	return slice.Map(records, func(_ int, src dao.SendRecord) domain.SendRecord {
		return r.toDomain(src)
	}), nil
}

func (r *sendRecordRepository) UpdateStatus(ctx context.Context, msgID string, from, to domain.SendStatus, failInfo string) error {
	return r.dao.UpdateStatus(ctx, msgID, int(from), int(to), failInfo)
}

func (r *sendRecordRepository) CreateShards(ctx context.Context, now time.Time) error {
	return r.dao.CreateShards(ctx, now)
}

func (r *sendRecordRepository) toEntity(record domain.SendRecord) dao.SendRecord {
	return dao.SendRecord{
		MsgID:      record.MsgID,
		MsgType:    int(record.MsgType),
		Receiver:   record.Receiver,
		TemplateID: record.TemplateID,
		Sender:     record.Sender,
		Status:     int(record.Status),
		FailInfo:   record.FailInfo,
		SendTime:   record.SendTime.UnixMilli(),
	}
}

func (r *sendRecordRepository) toDomain(record dao.SendRecord) domain.SendRecord {
	return domain.SendRecord{
		MsgID:      record.MsgID,
		MsgType:    domain.MessageType(record.MsgType),
		Receiver:   record.Receiver,
		TemplateID: record.TemplateID,
		Sender:     record.Sender,
		Status:     domain.SendStatus(record.Status),
		FailInfo:   record.FailInfo,
		SendTime:   time.UnixMilli(record.SendTime),
	}
}
