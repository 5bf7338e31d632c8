// Package log holds the library-wide logger. The library is silent by
// default; hosts that want diagnostics install a zap logger via SetLogger.
package log

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger replaces the library logger. Passing nil restores the nop logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}
