package dao

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"gitee.com/flycash/message-dispatch/internal/errs"
	pkgdao "gitee.com/flycash/message-dispatch/internal/pkg/dao"
	"gitee.com/flycash/message-dispatch/internal/sharding"
	"github.com/ecodeclub/ekit/syncx"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	SendRecordTable       = "send_record"
	SendRecordExtendTable = "send_record_extend"
)

// SendRecord 发送记录，按 msgId 里的时间分表
type SendRecord struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	MsgID      string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uk_msg_id"`
	MsgType    int    `gorm:"type:TINYINT;NOT NULL"`
	Receiver   string `gorm:"type:VARCHAR(128);NOT NULL;index:idx_receiver_send_time,priority:1"`
	TemplateID string `gorm:"type:VARCHAR(64);NOT NULL"`
	Sender     string `gorm:"type:VARCHAR(64);NOT NULL;comment:'实际使用的发送渠道'"`
	Status     int    `gorm:"type:TINYINT;NOT NULL;comment:'0-已提交 1-成功 2-提交失败 3-失败'"`
	FailInfo   string `gorm:"type:TEXT;comment:'失败时的发送结果 JSON'"`
	SendTime   int64  `gorm:"NOT NULL;index:idx_receiver_send_time,priority:2"`
	Ctime      int64
	Utime      int64
}

func (SendRecord) TableName() string {
	return SendRecordTable
}

// SendRecordExtend 发送记录扩展表，保存模板参数
type SendRecordExtend struct {
	ID       int64       `gorm:"primaryKey;autoIncrement"`
	MsgID    string      `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uk_msg_id"`
	MsgParam pkgdao.JSON `gorm:"type:JSON"`
	Ctime    int64
	Utime    int64
}

func (SendRecordExtend) TableName() string {
	return SendRecordExtendTable
}

type SendRecordDAO interface {
	// Insert 主表和扩展表在同一个事务里写入
	Insert(ctx context.Context, record SendRecord, extend SendRecordExtend) error
	FindByMsgID(ctx context.Context, msgID string) (SendRecord, SendRecordExtend, error)
	// ListByTimeRange 按接收者查询，跨越多个分表
	ListByTimeRange(ctx context.Context, receiver string, start, end time.Time) ([]SendRecord, error)
	// UpdateStatus 只更新当前状态为 from 的记录，没有更新到记录时返回 ErrSendRecordNotFound
	UpdateStatus(ctx context.Context, msgID string, from, to int, failInfo string) error
	// CreateShards 创建 now 所在季度以及下一个季度的分表
	CreateShards(ctx context.Context, now time.Time) error
}

type ShardingSendRecordDAO struct {
	dbs            *syncx.Map[string, *gorm.DB]
	recordStrategy sharding.Strategy
	extendStrategy sharding.Strategy
}

func NewShardingSendRecordDAO(dbs *syncx.Map[string, *gorm.DB],
	recordStrategy, extendStrategy sharding.Strategy,
) *ShardingSendRecordDAO {
	return &ShardingSendRecordDAO{
		dbs:            dbs,
		recordStrategy: recordStrategy,
		extendStrategy: extendStrategy,
	}
}

func (s *ShardingSendRecordDAO) Insert(ctx context.Context, record SendRecord, extend SendRecordExtend) error {
	id, err := strconv.ParseUint(record.MsgID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: msgId=%s", errs.ErrInvalidParameter, record.MsgID)
	}
	now := time.Now().UnixMilli()
	record.Ctime, record.Utime = now, now
	extend.MsgID = record.MsgID
	extend.Ctime, extend.Utime = now, now

	recordDst := s.recordStrategy.ShardWithID(id)
	extendDst := s.extendStrategy.ShardWithID(id)
	db, err := s.db(recordDst.DB)
	if err != nil {
		return err
	}
	// 两张表在同一个库
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(recordDst.Table).Create(&record).Error; err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("%w: msgId=%s", errs.ErrSendRecordDuplicate, record.MsgID)
			}
			return err
		}
		if err := tx.Table(extendDst.Table).Create(&extend).Error; err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("%w: msgId=%s", errs.ErrSendRecordDuplicate, record.MsgID)
			}
			return err
		}
		return nil
	})
}

func (s *ShardingSendRecordDAO) FindByMsgID(ctx context.Context, msgID string) (SendRecord, SendRecordExtend, error) {
	id, err := strconv.ParseUint(msgID, 10, 64)
	if err != nil {
		return SendRecord{}, SendRecordExtend{}, fmt.Errorf("%w: msgId=%s", errs.ErrInvalidParameter, msgID)
	}
	recordDst := s.recordStrategy.ShardWithID(id)
	extendDst := s.extendStrategy.ShardWithID(id)
	db, err := s.db(recordDst.DB)
	if err != nil {
		return SendRecord{}, SendRecordExtend{}, err
	}

	var record SendRecord
	err = db.WithContext(ctx).Table(recordDst.Table).Where("msg_id = ?", msgID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || isTableNotExistError(err) {
			return SendRecord{}, SendRecordExtend{}, fmt.Errorf("%w: msgId=%s", errs.ErrSendRecordNotFound, msgID)
		}
		return SendRecord{}, SendRecordExtend{}, err
	}
	var extend SendRecordExtend
	err = db.WithContext(ctx).Table(extendDst.Table).Where("msg_id = ?", msgID).First(&extend).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return SendRecord{}, SendRecordExtend{}, err
	}
	return record, extend, nil
}

func (s *ShardingSendRecordDAO) ListByTimeRange(ctx context.Context, receiver string, start, end time.Time) ([]SendRecord, error) {
	dsts := s.recordStrategy.Range(start, end)
	var (
		mu  sync.Mutex
		res []SendRecord
		eg  errgroup.Group
	)
	for _, dst := range dsts {
		eg.Go(func() error {
			db, err := s.db(dst.DB)
			if err != nil {
				return err
			}
			var records []SendRecord
			err = db.WithContext(ctx).Table(dst.Table).
				Where("receiver = ? AND send_time BETWEEN ? AND ?", receiver, start.UnixMilli(), end.UnixMilli()).
				Find(&records).Error
			// 分表还没有建出来
			if isTableNotExistError(err) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			res = append(res, records...)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].SendTime > res[j].SendTime
	})
	return res, nil
}

func (s *ShardingSendRecordDAO) UpdateStatus(ctx context.Context, msgID string, from, to int, failInfo string) error {
	id, err := strconv.ParseUint(msgID, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: msgId=%s", errs.ErrInvalidParameter, msgID)
	}
	dst := s.recordStrategy.ShardWithID(id)
	db, err := s.db(dst.DB)
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Table(dst.Table).
		Where("msg_id = ? AND status = ?", msgID, from).
		Updates(map[string]any{
			"status":    to,
			"fail_info": failInfo,
			"utime":     time.Now().UnixMilli(),
		})
	if res.Error != nil {
		if isTableNotExistError(res.Error) {
			return fmt.Errorf("%w: msgId=%s", errs.ErrSendRecordNotFound, msgID)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: msgId=%s", errs.ErrSendRecordNotFound, msgID)
	}
	return nil
}

func (s *ShardingSendRecordDAO) CreateShards(ctx context.Context, now time.Time) error {
	for _, strategy := range []sharding.Strategy{s.recordStrategy, s.extendStrategy} {
		for _, dst := range strategy.Upcoming(now) {
			db, err := s.db(dst.DB)
			if err != nil {
				return err
			}
			sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` LIKE `%s`", dst.Table, strategy.Table())
			if err = db.WithContext(ctx).Exec(sql).Error; err != nil {
				return fmt.Errorf("创建分表 %s 失败 %w", dst.Table, err)
			}
		}
	}
	return nil
}

func (s *ShardingSendRecordDAO) db(name string) (*gorm.DB, error) {
	db, ok := s.dbs.Load(name)
	if !ok {
		return nil, fmt.Errorf("未知库名 %s", name)
	}
	return db, nil
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func isUniqueConstraintError(err error) bool {
	return isMySQLError(err, 1062)
}

func isTableNotExistError(err error) bool {
	return isMySQLError(err, 1146)
}

func isMySQLError(err error, number uint16) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		return me.Number == number
	}
	return false
}
