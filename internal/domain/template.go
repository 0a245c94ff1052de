package domain

import (
	"strconv"
	"strings"
)

type TemplateStatus int

const (
	TemplateStatusEnabled  TemplateStatus = 0
	TemplateStatusDisabled TemplateStatus = 1
)

// ChannelTemplate 某个渠道上报备过的签名和模板编码
type ChannelTemplate struct {
	SignName     string `json:"signName"`
	TemplateCode string `json:"templateCode"`
	// 参数名，按顺序对应请求里的参数列表
	ParamNames []string `json:"paramNames,omitempty"`
}

// NamedParams 参数名缺失时使用 param1、param2 ...
func (c ChannelTemplate) NamedParams(params []string) map[string]string {
	res := make(map[string]string, len(params))
	for i, p := range params {
		name := "param" + strconv.Itoa(i+1)
		if i < len(c.ParamNames) && c.ParamNames[i] != "" {
			name = c.ParamNames[i]
		}
		res[name] = p
	}
	return res
}

// TemplateConfig 消息模板配置
type TemplateConfig struct {
	TemplateID string
	Name       string
	Content    string
	// 逗号分隔的渠道 ID
	ChannelIDs       string
	ChannelTemplates map[string]ChannelTemplate
	EnableStatus     TemplateStatus
	Ctime            int64
	Utime            int64
}

func (t TemplateConfig) Enabled() bool {
	return t.EnableStatus == TemplateStatusEnabled
}

// Channels 拆分渠道列表，去掉空白
func (t TemplateConfig) Channels() []string {
	parts := strings.Split(t.ChannelIDs, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

// ChannelTemplate 找不到的时候返回零值
func (t TemplateConfig) ChannelTemplate(channelID string) ChannelTemplate {
	if t.ChannelTemplates == nil {
		return ChannelTemplate{}
	}
	return t.ChannelTemplates[channelID]
}

// Render 用参数替换模板内容里的 {1} {2} ...
func (t TemplateConfig) Render(params []string) string {
	if len(params) == 0 {
		return t.Content
	}
	pairs := make([]string, 0, 2*len(params))
	for i, p := range params {
		pairs = append(pairs, "{"+strconv.Itoa(i+1)+"}", p)
	}
	return strings.NewReplacer(pairs...).Replace(t.Content)
}
