package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Init(logLevel string, logFile string) {
	simpleTimeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05"))
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     simpleTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	level := getZapLevel(logLevel)
	cores := []zapcore.Core{zapcore.NewCore(
		consoleEncoder,
		zapcore.Lock(os.Stdout),
		level,
	)}
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			fileEncoderConfig := encoderConfig
			fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
			cores = append(cores, zapcore.NewCore(
				zapcore.NewConsoleEncoder(fileEncoderConfig),
				zapcore.Lock(file),
				level,
			))
		}
	}
	logger := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	zap.ReplaceGlobals(logger)
}

func getZapLevel(level string) zapcore.LevelEnabler {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func Sync() error {
	return zap.L().Sync()
}

// WriteFile dumps a fetched payload for offline debugging. Dumps are only
// taken when a dump directory is configured and debug logging is on.
func WriteFile(name string, data []byte) {
	dumpDir := os.Getenv("DUMP_DIR")
	if dumpDir == "" {
		return
	}
	if !zap.L().Core().Enabled(zapcore.DebugLevel) {
		return
	}
	if err := os.MkdirAll(dumpDir, 0o755); err != nil {
		zap.S().Warnf("failed to create dump dir: %v", err)
		return
	}
	path := filepath.Join(dumpDir, fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		zap.S().Warnf("failed to write dump file: %v", err)
		return
	}
	zap.S().Debugf("dumped response to %s", path)
}
