package ioc

import (
	"gitee.com/flycash/message-dispatch/internal/repository"
	"gitee.com/flycash/message-dispatch/internal/service/provider/sms/client"
	recordsvc "gitee.com/flycash/message-dispatch/internal/service/record"
	"github.com/gotomicro/ego/core/econf"
	"github.com/meoying/dlock-go"
)

// 短信供应商，对应渠道 ID 的第一段
const (
	SMSProviderAliyun  = "ALI"
	SMSProviderTencent = "TX"
)

// InitSMSClients 没有配置密钥的供应商不会创建客户端
func InitSMSClients() map[string]client.Client {
	type AliyunConfig struct {
		RegionID        string `yaml:"regionId"`
		AccessKeyID     string `yaml:"accessKeyId"`
		AccessKeySecret string `yaml:"accessKeySecret"`
	}
	type TencentConfig struct {
		RegionID  string `yaml:"regionId"`
		SecretID  string `yaml:"secretId"`
		SecretKey string `yaml:"secretKey"`
		AppID     string `yaml:"appId"`
	}
	type Config struct {
		Aliyun  AliyunConfig  `yaml:"aliyun"`
		Tencent TencentConfig `yaml:"tencent"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("sms", &cfg); err != nil {
		panic(err)
	}
	clients := make(map[string]client.Client, 2)
	if cfg.Aliyun.AccessKeyID != "" {
		cli, err := client.NewAliyunSMS(cfg.Aliyun.RegionID, cfg.Aliyun.AccessKeyID, cfg.Aliyun.AccessKeySecret)
		if err != nil {
			panic(err)
		}
		clients[SMSProviderAliyun] = cli
	}
	if cfg.Tencent.SecretID != "" {
		cli, err := client.NewTencentCloudSMS(cfg.Tencent.RegionID, cfg.Tencent.SecretID, cfg.Tencent.SecretKey, cfg.Tencent.AppID)
		if err != nil {
			panic(err)
		}
		clients[SMSProviderTencent] = cli
	}
	return clients
}

// InitReceiptTask 目前只有腾讯云支持主动拉取回执
func InitReceiptTask(dclient dlock.Client, repo repository.SendRecordRepository, clients map[string]client.Client) *recordsvc.ReceiptTask {
	pullers := make(map[string]recordsvc.ReceiptPuller, len(clients))
	for name, cli := range clients {
		if p, ok := cli.(recordsvc.ReceiptPuller); ok {
			pullers[name] = p
		}
	}
	return recordsvc.NewReceiptTask(dclient, repo, pullers)
}
