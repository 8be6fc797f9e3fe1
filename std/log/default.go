package log

import "os"

var defaultLogger *Logger = NewText(os.Stderr)

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

func Trace(msg string, v ...any) {
	defaultLogger.log(nil, msg, LevelTrace, v...)
}

func Debug(msg string, v ...any) {
	defaultLogger.log(nil, msg, LevelDebug, v...)
}

func Info(msg string, v ...any) {
	defaultLogger.log(nil, msg, LevelInfo, v...)
}

func Warn(msg string, v ...any) {
	defaultLogger.log(nil, msg, LevelWarn, v...)
}

func Error(msg string, v ...any) {
	defaultLogger.log(nil, msg, LevelError, v...)
}
