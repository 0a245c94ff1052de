package ioc

import (
	"context"
	"fmt"

	"gitee.com/flycash/message-dispatch/internal/pkg/id_generator"
	"gitee.com/flycash/message-dispatch/internal/pkg/retry"
	"gitee.com/flycash/message-dispatch/internal/repository/dao"
	"gitee.com/flycash/message-dispatch/internal/sharding"
	"github.com/ecodeclub/ekit/syncx"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"gorm.io/gorm"
)

// 分表都在同一个库里
const shardingDBName = "message_dispatch"

func InitDB() *egorm.Component {
	db := egorm.Load("mysql").Build()
	strategy, err := retry.NewStrategy(retry.DefaultConfig)
	if err != nil {
		panic(err)
	}
	err = retry.Do(context.Background(), strategy, func(ctx context.Context) error {
		sqlDB, er := db.DB()
		if er != nil {
			return er
		}
		return sqlDB.PingContext(ctx)
	})
	if err != nil {
		panic(fmt.Errorf("等待数据库就绪失败: %w", err))
	}
	if err = dao.InitTables(db); err != nil {
		panic(err)
	}
	return db
}

func InitShardingDBs(db *egorm.Component) *syncx.Map[string, *gorm.DB] {
	var dbs syncx.Map[string, *gorm.DB]
	dbs.Store(shardingDBName, db)
	return &dbs
}

func InitSendRecordDAO(dbs *syncx.Map[string, *gorm.DB], gen *id.Generator) dao.SendRecordDAO {
	type Config struct {
		DB string `yaml:"db"`
	}
	cfg := Config{DB: shardingDBName}
	if err := econf.UnmarshalKey("sharding", &cfg); err != nil {
		panic(err)
	}
	return dao.NewShardingSendRecordDAO(dbs,
		sharding.NewStrategy(cfg.DB, dao.SendRecordTable, gen),
		sharding.NewStrategy(cfg.DB, dao.SendRecordExtendTable, gen),
	)
}
