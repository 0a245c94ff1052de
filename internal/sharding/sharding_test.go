//go:build unit

package sharding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestExactShard(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "一季度末", t: date(2020, 3, 1), want: "send_record_2020_m1"},
		{name: "一月", t: date(2020, 1, 31), want: "send_record_2020_m1"},
		{name: "二季度初", t: date(2020, 4, 1), want: "send_record_2020_m2"},
		{name: "三季度", t: date(2021, 9, 30), want: "send_record_2021_m3"},
		{name: "四季度", t: date(2021, 12, 31), want: "send_record_2021_m4"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExactShard("send_record", tc.t))
		})
	}
}

func TestRangeShards(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{
			name:  "跨年",
			start: date(2020, 3, 1),
			end:   date(2021, 5, 1),
			want: []string{
				"send_record_2020_m3", "send_record_2020_m4", "send_record_2020_m5",
				"send_record_2020_m6", "send_record_2020_m7", "send_record_2020_m8",
				"send_record_2020_m9", "send_record_2020_m10", "send_record_2020_m11",
				"send_record_2020_m12", "send_record_2021_m1", "send_record_2021_m2",
				"send_record_2021_m3", "send_record_2021_m4", "send_record_2021_m5",
			},
		},
		{
			name:  "同一个月",
			start: date(2022, 7, 1),
			end:   date(2022, 7, 28),
			want:  []string{"send_record_2022_m7"},
		},
		{
			name:  "结束早于开始",
			start: date(2022, 7, 1),
			end:   date(2022, 6, 28),
			want:  nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, RangeShards("send_record", tc.start, tc.end))
		})
	}
}

type fixedDecoder time.Time

func (f fixedDecoder) Timestamp(_ uint64) time.Time {
	return time.Time(f)
}

func utcDate(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestStrategy(t *testing.T) {
	t.Parallel()

	s := NewStrategy("message", "send_record", fixedDecoder(utcDate(2020, 3, 1, 0)))
	assert.Equal(t, Dst{DB: "message", Table: "send_record_2020_m1"}, s.ShardWithID(123))

	assert.Equal(t, []Dst{
		{DB: "message", Table: "send_record_2020_m4"},
		{DB: "message", Table: "send_record_2021_m1"},
		{DB: "message", Table: "send_record_2021_m2"},
	}, s.Range(utcDate(2020, 11, 15, 0), utcDate(2021, 4, 2, 0)))

	assert.Equal(t, []Dst{
		{DB: "message", Table: "send_record_2020_m4"},
		{DB: "message", Table: "send_record_2021_m1"},
	}, s.Upcoming(utcDate(2020, 12, 31, 0)))

	assert.Empty(t, s.Range(utcDate(2021, 4, 2, 0), utcDate(2020, 11, 15, 0)))
}

func TestStrategy_RangeCoversWrittenShard(t *testing.T) {
	t.Parallel()

	cst := time.FixedZone("CST", 8*3600)
	testCases := []struct {
		name  string
		idAt  time.Time
		start time.Time
		end   time.Time
	}{
		{
			// UTC 还在一季度，东八区已经是二季度
			name:  "东八区季度边界",
			idAt:  utcDate(2024, 3, 31, 20),
			start: time.Date(2024, 4, 1, 0, 0, 0, 0, cst),
			end:   time.Date(2024, 4, 2, 0, 0, 0, 0, cst),
		},
		{
			name:  "西五区季度边界",
			idAt:  utcDate(2024, 7, 1, 2),
			start: time.Date(2024, 6, 30, 0, 0, 0, 0, time.FixedZone("EST", -5*3600)),
			end:   time.Date(2024, 6, 30, 23, 0, 0, 0, time.FixedZone("EST", -5*3600)),
		},
		{
			// ID 在季度最后一刻生成，保存时已经是下个季度
			name:  "保存时间跨季度",
			idAt:  time.Date(2024, 9, 30, 23, 59, 59, 0, time.UTC),
			start: utcDate(2024, 10, 1, 0),
			end:   utcDate(2024, 10, 1, 1),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := NewStrategy("message", "send_record", fixedDecoder(tc.idAt))
			written := s.ShardWithID(1)
			assert.Contains(t, s.Range(tc.start, tc.end), written)
		})
	}
}
