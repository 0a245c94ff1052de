//go:build unit

package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gitee.com/flycash/message-dispatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWechat struct {
	tokenCalls atomic.Int32
	sendCalls  atomic.Int32
	// 第一次发送返回 token 过期
	expireFirst bool
	lastBody    map[string]any
}

func (f *fakeWechat) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/cgi-bin/token", func(w http.ResponseWriter, r *http.Request) {
		n := f.tokenCalls.Add(1)
		assert.Equal(t, "app", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{"access_token":"token-` + string(rune('0'+n)) + `","expires_in":7200}`))
	})
	mux.HandleFunc("/cgi-bin/message/template/send", func(w http.ResponseWriter, r *http.Request) {
		n := f.sendCalls.Add(1)
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		f.lastBody = body
		if f.expireFirst && n == 1 {
			_, _ = w.Write([]byte(`{"errcode":42001,"errmsg":"access_token expired"}`))
			return
		}
		if body["touser"] == "bad-openid" {
			_, _ = w.Write([]byte(`{"errcode":40003,"errmsg":"invalid openid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"errcode":0,"errmsg":"ok","msgid":1}`))
	})
	return mux
}

func TestWechatClient_TokenCache(t *testing.T) {
	t.Parallel()

	f := &fakeWechat{}
	server := httptest.NewServer(f.handler(t))
	defer server.Close()

	c := NewWechatClient(WechatConfig{AppID: "app", AppSecret: "secret", Endpoint: server.URL}, server.Client())
	for i := 0; i < 3; i++ {
		res, err := c.SendTemplate(context.Background(), TemplateMessage{ToUser: "openid", TemplateID: "tpl"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.ErrCode)
	}
	assert.Equal(t, int32(1), f.tokenCalls.Load())
	assert.Equal(t, int32(3), f.sendCalls.Load())

	// token 过期之后重新获取
	c.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	_, err := c.SendTemplate(context.Background(), TemplateMessage{ToUser: "openid", TemplateID: "tpl"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.tokenCalls.Load())
}

func TestWechatClient_RefreshOnExpired(t *testing.T) {
	t.Parallel()

	f := &fakeWechat{expireFirst: true}
	server := httptest.NewServer(f.handler(t))
	defer server.Close()

	c := NewWechatClient(WechatConfig{AppID: "app", Endpoint: server.URL}, server.Client())
	res, err := c.SendTemplate(context.Background(), TemplateMessage{ToUser: "openid", TemplateID: "tpl"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.ErrCode)
	assert.Equal(t, int32(2), f.tokenCalls.Load())
	assert.Equal(t, int32(2), f.sendCalls.Load())
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	f := &fakeWechat{}
	server := httptest.NewServer(f.handler(t))
	defer server.Close()

	p := NewProvider(NewWechatClient(WechatConfig{AppID: "app", Endpoint: server.URL}, server.Client()))
	tmpl := domain.TemplateConfig{
		TemplateID: "T1",
		ChannelTemplates: map[string]domain.ChannelTemplate{
			domain.PlatformPushTemplate: {TemplateCode: "wx-tpl", ParamNames: []string{"name"}},
		},
	}
	evt := domain.MessageSendEvent{
		MsgID:   "9",
		Request: domain.MessageSendRequest{MsgType: domain.MessageTypePushTemplate, Receiver: "openid", ParamList: []string{"Tom"}},
	}

	got, err := p.Send(context.Background(), evt, tmpl)
	require.NoError(t, err)
	assert.Equal(t, domain.SuccessOutcome(), got)
	assert.Equal(t, "wx-tpl", f.lastBody["template_id"])
	assert.Equal(t, map[string]any{"name": map[string]any{"value": "Tom"}}, f.lastBody["data"])

	evt.Request.Receiver = "bad-openid"
	got, err = p.Send(context.Background(), evt, tmpl)
	require.NoError(t, err)
	assert.Equal(t, domain.FailedOutcome("40003", "invalid openid"), got)
}
