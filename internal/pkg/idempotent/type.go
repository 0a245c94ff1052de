package idempotent

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"
)

// DefaultTTL 幂等键的过期时间
const DefaultTTL = 2 * time.Hour

// 各个消费者的幂等键前缀
const (
	PrefixSMSVerificationSend = "sms_verification_message_send:"
	PrefixOtherSend           = "other_message_send:"
	PrefixCommonSave          = "common_message_save:"
)

// Guard 幂等守卫
//
//go:generate mockgen -source=./type.go -destination=./mocks/guard.mock.go -package=idempotentmocks Guard
type Guard interface {
	// TrySet 键不存在时写入并返回 true，已经存在返回 false
	// 正确性依赖存储本身的原子性，不需要进程内加锁
	TrySet(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Key 前缀 + msgId + 消息内容哈希
func Key(prefix, msgID string, payload []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(payload)
	return prefix + msgID + "_" + strconv.FormatUint(h.Sum64(), 16)
}
