package ioc

import (
	"gitee.com/flycash/message-dispatch/internal/web"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
)

func InitJwtAuth() *web.JwtAuth {
	type Config struct {
		Key string `yaml:"key"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("jwt", &cfg); err != nil {
		panic(err)
	}
	return web.NewJwtAuth(cfg.Key)
}

func InitWebServer(h *web.Handler) *egin.Component {
	server := egin.Load("server.http").Build()
	h.PrivateRoutes(server.Engine)
	return server
}
