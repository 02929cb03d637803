package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

// Init builds the process-wide logger. Supported modes are "dev", "prod"
// and "quiet" (production encoder, warnings and above).
func Init(mode string) error {
	var (
		l   *zap.Logger
		err error
	)

	switch mode {
	case "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	case "prod":
		l, err = zap.NewProduction()
	case "quiet":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		l, err = cfg.Build()
	default:
		return fmt.Errorf("unknown log mode %q (use dev, prod or quiet)", mode)
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	log = l
	mu.Unlock()

	return nil
}

func InitTestLogger() {
	mu.Lock()
	log = zap.NewNop()
	mu.Unlock()
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Sync() {
	_ = L().Sync()
}

func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}
