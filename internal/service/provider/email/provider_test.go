//go:build unit

package email_test

import (
	"context"
	"errors"
	"testing"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/service/provider/email"
	emailmocks "gitee.com/flycash/message-dispatch/internal/service/provider/email/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	evt := domain.MessageSendEvent{
		MsgID: "7",
		Request: domain.MessageSendRequest{
			MsgType:   domain.MessageTypeEmail,
			Receiver:  "a@b.com",
			ParamList: []string{"Tom", "42"},
		},
	}
	tmpl := domain.TemplateConfig{Name: "账单", Content: "你好 {1}，本月账单 {2} 元"}
	wantMail := email.Mail{To: "a@b.com", Subject: "账单", Body: "你好 Tom，本月账单 42 元"}

	testCases := []struct {
		name   string
		mailer func(ctrl *gomock.Controller) email.Mailer
		want   domain.SendOutcome
	}{
		{
			name: "发送成功",
			mailer: func(ctrl *gomock.Controller) email.Mailer {
				m := emailmocks.NewMockMailer(ctrl)
				m.EXPECT().Send(gomock.Any(), wantMail).Return(nil)
				return m
			},
			want: domain.SuccessOutcome(),
		},
		{
			name: "SMTP 失败",
			mailer: func(ctrl *gomock.Controller) email.Mailer {
				m := emailmocks.NewMockMailer(ctrl)
				m.EXPECT().Send(gomock.Any(), wantMail).Return(errors.New("535 auth failed"))
				return m
			},
			want: domain.FailedOutcome(domain.OutcomeCodeClientError, "535 auth failed"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			got, err := email.NewProvider(tc.mailer(ctrl)).Send(context.Background(), evt, tmpl)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
