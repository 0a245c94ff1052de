package id

import (
	"errors"
	"strconv"
	"time"

	"github.com/sony/sonyflake"
)

// sonyflake 的时间单位是 10ms
const timeUnit = 10 * time.Millisecond

// DefaultStartTime 基准时间 2024-01-01 UTC
var DefaultStartTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var errInitFailed = errors.New("初始化 sonyflake 失败")

// Generator 消息 ID 生成器，ID 里带有生成时间，可以反解出来用于分表
type Generator struct {
	sf        *sonyflake.Sonyflake
	startTime time.Time
}

// NewGenerator machineID 为空时使用 sonyflake 默认的私有 IP 算法
func NewGenerator(startTime time.Time, machineID func() (uint16, error)) (*Generator, error) {
	if startTime.IsZero() {
		startTime = DefaultStartTime
	}
	sf := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: startTime,
		MachineID: machineID,
	})
	if sf == nil {
		return nil, errInitFailed
	}
	return &Generator{
		sf:        sf,
		startTime: startTime.UTC().Truncate(timeUnit),
	}, nil
}

func (g *Generator) NextID() (uint64, error) {
	return g.sf.NextID()
}

// NextMsgID 字符串形式的消息 ID
func (g *Generator) NextMsgID() (string, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(id, 10), nil
}

// Timestamp 反解 ID 里的生成时间，精度 10ms
func (g *Generator) Timestamp(id uint64) time.Time {
	parts := sonyflake.Decompose(id)
	return g.startTime.Add(time.Duration(parts["time"]) * timeUnit)
}

// MsgTimestamp 解析字符串形式的消息 ID
func (g *Generator) MsgTimestamp(msgID string) (time.Time, error) {
	id, err := strconv.ParseUint(msgID, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return g.Timestamp(id), nil
}
