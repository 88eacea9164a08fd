package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Init replaces Log with a development console logger.
func Init() {
	InitLevel(zapcore.InfoLevel)
}

// InitLevel is Init with an explicit minimum level.
func InitLevel(level zapcore.Level) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		// Keep the no-op logger; nothing else can report this.
		return
	}
	Log = l
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
