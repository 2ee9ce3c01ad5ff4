package logsvc

import (
	"go.uber.org/zap"

	"github.com/afthonios/catalog/core"
)

// NewZapLogger builds the process logger: human readable in debug, JSON otherwise.
func NewZapLogger(conf *core.Config, name string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if conf.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.InitialFields = map[string]interface{}{
		"app":   conf.AppName,
		"env":   conf.Env,
		"build": conf.Build,
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(name).Sugar(), nil
}
