package sharding

import (
	"fmt"
	"time"
)

// 分表名格式 table_{year}_m{n}
// 精确分表 n 为季度，范围查询 n 为月份
const shardFormat = "%s_%d_m%d"

// Dst 分库分表的目标
type Dst struct {
	DB    string
	Table string
}

// ExactShard 按季度计算分表名
func ExactShard(table string, t time.Time) string {
	quarter := (int(t.Month()) + 2) / 3
	return fmt.Sprintf(shardFormat, table, t.Year(), quarter)
}

// RangeShards 从 start 所在月份到 end 所在月份，逐月生成分表名，两端都包含
// end 早于 start 时返回空
func RangeShards(table string, start, end time.Time) []string {
	year, month := start.Year(), int(start.Month())
	endYear, endMonth := end.Year(), int(end.Month())
	var res []string
	for year < endYear || (year == endYear && month <= endMonth) {
		res = append(res, fmt.Sprintf(shardFormat, table, year, month))
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return res
}

// TimeDecoder 从 ID 里解出生成时间
type TimeDecoder interface {
	Timestamp(id uint64) time.Time
}

// Strategy 绑定了库名和逻辑表名的分表策略
type Strategy struct {
	db      string
	table   string
	decoder TimeDecoder
}

func NewStrategy(db, table string, decoder TimeDecoder) Strategy {
	return Strategy{
		db:      db,
		table:   table,
		decoder: decoder,
	}
}

// Shard 统一按 UTC 计算，读写两边才能落到同一张表
func (s Strategy) Shard(t time.Time) Dst {
	return Dst{DB: s.db, Table: ExactShard(s.table, t.UTC())}
}

// ShardWithID 先从 ID 里解出时间再计算
func (s Strategy) ShardWithID(id uint64) Dst {
	return s.Shard(s.decoder.Timestamp(id))
}

// Range 范围查询涉及的物理表
// 物理表按季度划分，所以逐月遍历之后按季度去重
// 记录按 ID 时间分表，按保存时间查询，两者可能跨月，所以两端各多查一个月
func (s Strategy) Range(start, end time.Time) []Dst {
	if end.Before(start) {
		return nil
	}
	from := monthStart(start).AddDate(0, -1, 0)
	to := monthStart(end).AddDate(0, 1, 0)
	months := RangeShards(s.table, from, to)
	res := make([]Dst, 0, len(months)/3+1)
	seen := make(map[string]struct{}, len(months))
	cur := from
	for range months {
		dst := s.Shard(cur)
		if _, ok := seen[dst.Table]; !ok {
			seen[dst.Table] = struct{}{}
			res = append(res, dst)
		}
		cur = cur.AddDate(0, 1, 0)
	}
	return res
}

// Upcoming 当前季度和下一个季度的物理表，用于提前建表
func (s Strategy) Upcoming(now time.Time) []Dst {
	cur := monthStart(now)
	return []Dst{
		s.Shard(cur),
		s.Shard(cur.AddDate(0, 3, 0)),
	}
}

// monthStart UTC 下所在月份的第一天
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s Strategy) Table() string {
	return s.table
}

func (s Strategy) DB() string {
	return s.db
}
