package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/genricoloni/dailyblessing/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds a JSON logger on stderr, teed into a rolling file when enabled
func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	logCfg := cfg.Log()

	level, err := zapcore.ParseLevel(logCfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	if logCfg.File.Enabled {
		if err := os.MkdirAll(filepath.Dir(logCfg.File.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rolling := &lumberjack.Logger{
			Filename:   logCfg.File.Path,
			MaxSize:    logCfg.File.MaxSizeMB,
			MaxBackups: logCfg.File.MaxBackups,
			MaxAge:     logCfg.File.MaxAgeDays,
			Compress:   logCfg.File.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.AddSync(rolling), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
