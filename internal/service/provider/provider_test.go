//go:build unit

package provider_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"gitee.com/flycash/message-dispatch/internal/errs"
	"gitee.com/flycash/message-dispatch/internal/service/provider"
	providermocks "gitee.com/flycash/message-dispatch/internal/service/provider/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func smsEvent(channels ...string) *domain.MessageSendEvent {
	return &domain.MessageSendEvent{
		MsgID:               "1001",
		Request:             domain.MessageSendRequest{MsgType: domain.MessageTypeSMSInform, Receiver: "13800138000"},
		SmsOptionalChannels: channels,
	}
}

// popSelector 模拟真实选择器，每次取第一个渠道
func popSelector(p provider.Provider) func(ctx context.Context, evt *domain.MessageSendEvent) (provider.Provider, error) {
	return func(_ context.Context, evt *domain.MessageSendEvent) (provider.Provider, error) {
		if len(evt.SmsOptionalChannels) == 0 {
			return nil, errs.ErrSelectionExhausted
		}
		evt.CurrentSendChannel = evt.SmsOptionalChannels[0]
		evt.SmsOptionalChannels = evt.SmsOptionalChannels[1:]
		return p, nil
	}
}

func TestDispatcher_Send(t *testing.T) {
	t.Parallel()

	failed := domain.FailedOutcome("isv.OUT_OF_SERVICE", "停机")
	testCases := []struct {
		name        string
		evt         *domain.MessageSendEvent
		mock        func(ctrl *gomock.Controller) provider.Selector
		wantOutcome domain.SendOutcome
		wantErr     error
	}{
		{
			name: "第一次就成功",
			evt:  smsEvent("ALI_01", "TX_01"),
			mock: func(ctrl *gomock.Controller) provider.Selector {
				p := providermocks.NewMockProvider(ctrl)
				p.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.SuccessOutcome(), nil)
				s := providermocks.NewMockSelector(ctrl)
				s.EXPECT().Select(gomock.Any(), gomock.Any()).DoAndReturn(popSelector(p))
				return s
			},
			wantOutcome: domain.SuccessOutcome(),
		},
		{
			name: "失败之后切换渠道成功",
			evt:  smsEvent("ALI_01", "TX_01"),
			mock: func(ctrl *gomock.Controller) provider.Selector {
				p := providermocks.NewMockProvider(ctrl)
				gomock.InOrder(
					p.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(failed, nil),
					p.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.SuccessOutcome(), nil),
				)
				s := providermocks.NewMockSelector(ctrl)
				s.EXPECT().Select(gomock.Any(), gomock.Any()).DoAndReturn(popSelector(p)).Times(2)
				return s
			},
			wantOutcome: domain.SuccessOutcome(),
		},
		{
			name: "非短信失败不重试",
			evt: &domain.MessageSendEvent{
				Request: domain.MessageSendRequest{MsgType: domain.MessageTypeEmail},
				// 即使带了候选渠道也不会重试
				SmsOptionalChannels: []string{"X_1"},
			},
			mock: func(ctrl *gomock.Controller) provider.Selector {
				p := providermocks.NewMockProvider(ctrl)
				p.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(failed, nil)
				s := providermocks.NewMockSelector(ctrl)
				s.EXPECT().Select(gomock.Any(), gomock.Any()).Return(p, nil)
				return s
			},
			wantOutcome: failed,
		},
		{
			name: "第一次选择就没有渠道",
			evt:  smsEvent("UNKNOWN_01"),
			mock: func(ctrl *gomock.Controller) provider.Selector {
				s := providermocks.NewMockSelector(ctrl)
				s.EXPECT().Select(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: 交集为空", errs.ErrSelectionExhausted))
				return s
			},
			wantOutcome: domain.FailedOutcome(domain.OutcomeCodeSelectionExhausted, "无可用的发送渠道: 交集为空"),
		},
		{
			name: "重试时没有渠道返回上一次的失败",
			evt:  smsEvent("ALI_01", "UNKNOWN_01"),
			mock: func(ctrl *gomock.Controller) provider.Selector {
				p := providermocks.NewMockProvider(ctrl)
				p.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(failed, nil)
				s := providermocks.NewMockSelector(ctrl)
				gomock.InOrder(
					s.EXPECT().Select(gomock.Any(), gomock.Any()).DoAndReturn(popSelector(p)),
					s.EXPECT().Select(gomock.Any(), gomock.Any()).Return(nil, errs.ErrSelectionExhausted),
				)
				return s
			},
			wantOutcome: failed,
		},
		{
			name: "没有注册实现视为一次失败",
			evt:  smsEvent("HW_01"),
			mock: func(ctrl *gomock.Controller) provider.Selector {
				s := providermocks.NewMockSelector(ctrl)
				s.EXPECT().Select(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, evt *domain.MessageSendEvent) (provider.Provider, error) {
						evt.SmsOptionalChannels = nil
						return nil, errs.ErrStrategyNotFound
					})
				return s
			},
			wantOutcome: domain.FailedOutcome(domain.OutcomeCodeStrategyNotFound, errs.ErrStrategyNotFound.Error()),
		},
		{
			name: "选择器内部错误",
			evt:  smsEvent("ALI_01"),
			mock: func(ctrl *gomock.Controller) provider.Selector {
				s := providermocks.NewMockSelector(ctrl)
				s.EXPECT().Select(gomock.Any(), gomock.Any()).Return(nil, errs.ErrSelectionInternal)
				return s
			},
			wantErr: errs.ErrSelectionInternal,
		},
		{
			name: "供应商内部错误",
			evt:  smsEvent("ALI_01", "TX_01"),
			mock: func(ctrl *gomock.Controller) provider.Selector {
				p := providermocks.NewMockProvider(ctrl)
				p.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.SendOutcome{}, errors.New("panic"))
				s := providermocks.NewMockSelector(ctrl)
				s.EXPECT().Select(gomock.Any(), gomock.Any()).DoAndReturn(popSelector(p))
				return s
			},
			wantErr: errors.New("panic"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			d := provider.NewDispatcher(tc.mock(ctrl))
			outcome, err := d.Send(context.Background(), tc.evt, domain.TemplateConfig{})
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOutcome, outcome)
		})
	}
}

// 选择器没有剔除渠道时，尝试次数也不会超过候选数 + 1
func TestDispatcher_Bounded(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := providermocks.NewMockProvider(ctrl)
	p.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.FailedOutcome("E", "失败"), nil).Times(3)
	s := providermocks.NewMockSelector(ctrl)
	s.EXPECT().Select(gomock.Any(), gomock.Any()).Return(p, nil).Times(3)

	outcome, err := provider.NewDispatcher(s).Send(context.Background(), smsEvent("A_1", "B_1"), domain.TemplateConfig{})
	require.NoError(t, err)
	assert.False(t, outcome.Success)
}
