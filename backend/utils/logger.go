package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig определяет конфигурацию для логгера
type LoggerConfig struct {
	// Формат логов (text/json)
	Format string
	// Минимальный уровень (debug, info, warn, error)
	Level string
}

// InitLogger создает логгер приложения. Формат json включает production
// encoder zap, любой другой выводит цветную консоль.
func InitLogger(config ...LoggerConfig) (*zap.SugaredLogger, error) {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar().Named("learnhub"), nil
}
