package ioc

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"gitee.com/flycash/message-dispatch/internal/pkg/retry"
	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dsn = "root:root@tcp(localhost:13316)/message_dispatch?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=True&loc=Local&timeout=1s&readTimeout=3s&writeTimeout=3s&multiStatements=true"

var (
	db         *gorm.DB
	dbInitOnce sync.Once
)

func waitForDBSetup() {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		panic(err)
	}
	defer sqlDB.Close()
	strategy, err := retry.NewStrategy(retry.DefaultConfig)
	if err != nil {
		panic(err)
	}
	err = retry.Do(context.Background(), strategy, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx)
	})
	if err != nil {
		panic(fmt.Errorf("等待数据库就绪失败: %w", err))
	}
}

// InitDB 表结构由各个测试自己初始化
func InitDB() *gorm.DB {
	dbInitOnce.Do(func() {
		waitForDBSetup()
		var err error
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			panic(fmt.Errorf("数据库连接失败: %w", err))
		}
	})
	return db
}
