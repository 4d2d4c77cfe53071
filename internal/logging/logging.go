// Package logging builds the client logger: structured JSON into a rotated
// file, so CLI output stays clean for the user.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to path with size-based rotation.
func New(path string, debug bool) *zap.Logger {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level))
}
