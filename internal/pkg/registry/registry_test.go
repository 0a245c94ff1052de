//go:build unit

package registry

import (
	"testing"

	"gitee.com/flycash/message-dispatch/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sender interface {
	Name() string
}

type namedSender string

func (n namedSender) Name() string {
	return string(n)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := New[sender]("sender")
	require.NoError(t, r.Register("SMS_MESSAGE_ALI", namedSender("ali")))
	require.NoError(t, r.Register("MAIL_MESSAGE", namedSender("mail")))

	testCases := []struct {
		name    string
		key     string
		want    string
		wantErr error
	}{
		{name: "命中短信渠道", key: "SMS_MESSAGE_ALI", want: "ali"},
		{name: "命中邮件", key: "MAIL_MESSAGE", want: "mail"},
		{name: "未注册", key: "SMS_MESSAGE_TX", wantErr: errs.ErrStrategyNotFound},
		{name: "不带命名空间的key不会串", key: "ALI", wantErr: errs.ErrStrategyNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := r.Resolve(tc.key)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				assert.Nil(t, s)
				return
			}
			assert.Equal(t, tc.want, s.Name())
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := New[int]("weight")
	require.NoError(t, r.Register("a", 1))
	assert.Error(t, r.Register("a", 2))
	assert.ErrorIs(t, r.Register("", 3), errs.ErrInvalidParameter)

	v, err := r.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"a"}, r.Keys())

	assert.Panics(t, func() {
		r.MustRegister("a", 4)
	})
}

func TestRegistry_KeysSorted(t *testing.T) {
	t.Parallel()

	r := New[int]("sms")
	r.MustRegister("TX_01", 1).MustRegister("ALI_02", 2).MustRegister("ALI_01", 3)
	assert.Equal(t, []string{"ALI_01", "ALI_02", "TX_01"}, r.Keys())
	assert.Empty(t, New[int]("empty").Keys())
}
