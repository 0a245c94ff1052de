package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

const defaultEndpoint = "https://api.weixin.qq.com"

// access_token 失效
var tokenExpiredCodes = map[int64]struct{}{40001: {}, 40014: {}, 42001: {}}

type WechatConfig struct {
	AppID     string `yaml:"appId"`
	AppSecret string `yaml:"appSecret"`
	Endpoint  string `yaml:"endpoint"`
}

// TemplateMessage 公众号模板消息
type TemplateMessage struct {
	ToUser     string
	TemplateID string
	Data       map[string]string
}

// WechatResult errcode 为 0 表示成功
type WechatResult struct {
	ErrCode int64
	ErrMsg  string
}

// WechatClient 公众号接口，负责缓存 access_token
type WechatClient struct {
	cfg    WechatConfig
	client *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewWechatClient(cfg WechatConfig, client *http.Client) *WechatClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	return &WechatClient{cfg: cfg, client: client, now: time.Now}
}

// SendTemplate token 失效时刷新一次再重试
func (c *WechatClient) SendTemplate(ctx context.Context, msg TemplateMessage) (WechatResult, error) {
	res, err := c.sendTemplate(ctx, msg)
	if err != nil {
		return WechatResult{}, err
	}
	if _, ok := tokenExpiredCodes[res.ErrCode]; ok {
		c.invalidate()
		return c.sendTemplate(ctx, msg)
	}
	return res, nil
}

func (c *WechatClient) sendTemplate(ctx context.Context, msg TemplateMessage) (WechatResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return WechatResult{}, err
	}
	data := make(map[string]map[string]string, len(msg.Data))
	for k, v := range msg.Data {
		data[k] = map[string]string{"value": v}
	}
	body, err := json.Marshal(map[string]any{
		"touser":      msg.ToUser,
		"template_id": msg.TemplateID,
		"data":        data,
	})
	if err != nil {
		return WechatResult{}, err
	}
	u := c.cfg.Endpoint + "/cgi-bin/message/template/send?access_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return WechatResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	raw, err := c.do(req)
	if err != nil {
		return WechatResult{}, err
	}
	return WechatResult{
		ErrCode: gjson.GetBytes(raw, "errcode").Int(),
		ErrMsg:  gjson.GetBytes(raw, "errmsg").String(),
	}, nil
}

func (c *WechatClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}
	q := url.Values{}
	q.Set("grant_type", "client_credential")
	q.Set("appid", c.cfg.AppID)
	q.Set("secret", c.cfg.AppSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/cgi-bin/token?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	raw, err := c.do(req)
	if err != nil {
		return "", err
	}
	token := gjson.GetBytes(raw, "access_token")
	if !token.Exists() || token.String() == "" {
		return "", fmt.Errorf("获取 access_token 失败 errcode=%d errmsg=%s",
			gjson.GetBytes(raw, "errcode").Int(), gjson.GetBytes(raw, "errmsg").String())
	}
	expiresIn := gjson.GetBytes(raw, "expires_in").Int()
	// 提前一分钟过期
	c.token = token.String()
	c.expiresAt = c.now().Add(time.Duration(expiresIn)*time.Second - time.Minute)
	return c.token, nil
}

func (c *WechatClient) invalidate() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *WechatClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("微信接口返回 http %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("微信接口返回了非法 JSON: %s", raw)
	}
	return raw, nil
}
