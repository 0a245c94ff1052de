package ioc

import (
	"time"

	"gitee.com/flycash/message-dispatch/internal/pkg/id_generator"
	"gitee.com/flycash/message-dispatch/internal/service/message"
	"github.com/gotomicro/ego/core/econf"
)

func InitIDGenerator() *id.Generator {
	type Config struct {
		// 为 0 时使用私有 IP 的低 16 位
		MachineID uint16 `yaml:"machineId"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("idGenerator", &cfg); err != nil {
		panic(err)
	}
	var machineID func() (uint16, error)
	if cfg.MachineID != 0 {
		machineID = func() (uint16, error) { return cfg.MachineID, nil }
	}
	gen, err := id.NewGenerator(time.Time{}, machineID)
	if err != nil {
		panic(err)
	}
	return gen
}

func InitMsgIDGenerator(gen *id.Generator) message.IDGenerator {
	return gen
}
