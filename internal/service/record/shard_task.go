package record

import (
	"context"
	"time"

	"gitee.com/flycash/message-dispatch/internal/pkg/loopjob"
	"gitee.com/flycash/message-dispatch/internal/repository"
	"github.com/meoying/dlock-go"
)

const shardTaskKey = "message_send_record_create_shards"

// ShardTableTask 提前建好当前和下一个季度的分表
type ShardTableTask struct {
	dclient  dlock.Client
	repo     repository.SendRecordRepository
	interval time.Duration
	now      func() time.Time
}

func NewShardTableTask(dclient dlock.Client, repo repository.SendRecordRepository) *ShardTableTask {
	return &ShardTableTask{
		dclient:  dclient,
		repo:     repo,
		interval: 30 * time.Second,
		now:      time.Now,
	}
}

func (t *ShardTableTask) Start(ctx context.Context) {
	lj := loopjob.NewInfiniteLoop(t.dclient, t.CreateShards, shardTaskKey)
	lj.Run(ctx)
}

func (t *ShardTableTask) CreateShards(ctx context.Context) error {
	err := t.repo.CreateShards(ctx, t.now())
	// 间隔要小于分布式锁的过期时间
	loopjob.Sleep(ctx, t.interval)
	return err
}
