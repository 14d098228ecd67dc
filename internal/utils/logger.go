package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process-wide sugared logger. Development gets
// colored console output at debug level; production gets JSON at info
// with ISO8601 timestamps so log lines correlate with mongo and S3
// server-side timestamps.
func NewLogger(dev bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build(zap.Fields(zap.String("service", "esamaaj")))
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
